package report

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
)

// Artifact is a rendered file attached to a delivery, typically the xlsx
// workbook produced for the report.
type Artifact struct {
	Filename string
	Data     []byte
}

// Deliverer fans a finished report out to WhatsApp recipients through the
// relay. The artifact is uploaded once and its uid reused for every target.
type Deliverer struct {
	relay timelines.Client
}

func NewDeliverer(relay timelines.Client) *Deliverer {
	return &Deliverer{relay: relay}
}

// Deliver sends text (and the artifact, when present) to every target.
// A failure for one target never aborts the rest; the caller inspects the
// returned outcomes to log and count failures. When the upload itself
// fails the message still goes out without the attachment.
func (d *Deliverer) Deliver(ctx context.Context, targets []domain.DeliveryTarget, text string, artifact *Artifact) []domain.SendOutcome {
	fileUID := ""
	if artifact != nil && len(artifact.Data) > 0 {
		uid, err := d.relay.UploadFile(ctx, artifact.Filename, artifact.Data)
		if err != nil {
			logrus.WithError(err).WithField("filename", artifact.Filename).
				Warn("file upload failed, delivering text only")
		} else {
			fileUID = uid
		}
	}

	outcomes := make([]domain.SendOutcome, 0, len(targets))
	for _, target := range targets {
		err := d.relay.SendMessage(ctx, target.Phone, text, fileUID)
		if err != nil {
			err = errors.Wrapf(err, "send to %s", target.Name)
			logrus.WithError(err).WithFields(logrus.Fields{
				"target": target.Name,
				"phone":  target.Phone,
			}).Error("message delivery failed")
		}
		outcomes = append(outcomes, domain.SendOutcome{Target: target, Sent: err == nil, Err: err})
	}

	return outcomes
}

// SentCount tallies successful deliveries for the run summary log line.
func SentCount(outcomes []domain.SendOutcome) int {
	sent := 0
	for _, o := range outcomes {
		if o.Sent {
			sent++
		}
	}
	return sent
}
