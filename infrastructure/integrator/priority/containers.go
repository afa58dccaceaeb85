package priority

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Container statuses that count as "at or en route to the port". The Hebrew
// labels come from the PORDERS status column.
const containerStatusFilter = `STATDES eq 'כנ"מ ללא BL' or STATDES eq 'בדרך'`

// GetOpenContainers fetches purchase orders whose container has not been
// released yet, newest ETA first.
func (c *PriorityClient) GetOpenContainers(ctx context.Context) ([]ContainerOrder, error) {
	params := url.Values{}
	params.Set("$filter", containerStatusFilter)
	params.Set("$select", "ORDNAME,SUPNAME,CDES,CURDATE,QPRICE,STATDES,IMPFNUM,NOA_ETA,NOA_ETD,NOA_KONTAINER")
	params.Set("$orderby", "NOA_ETA desc")
	params.Set("$top", "50")

	var envelope odataEnvelope[ContainerOrder]
	if err := c.get(ctx, "/PORDERS", params, &envelope); err != nil {
		return nil, errors.Wrap(err, "priority: fetching open containers")
	}

	logrus.WithField("records", len(envelope.Value)).Debug("priority: containers fetched")
	return envelope.Value, nil
}
