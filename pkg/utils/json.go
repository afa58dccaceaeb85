package utils

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/sirupsen/logrus"
)

// PrettyJson renders a value (or raw JSON bytes) as indented JSON for prompt
// and log embedding. Unmarshalable input yields an empty string, never a
// panic.
func PrettyJson(in any) string {
	var buffer []byte
	var err error

	if reflect.TypeOf(in) != reflect.TypeOf([]byte{}) {
		buffer, err = json.Marshal(in)
		if err != nil {
			logrus.WithError(err).Warn("failed to marshal value for pretty printing")
		}
	} else {
		buffer = in.([]byte)
	}

	var out bytes.Buffer
	err = json.Indent(&out, buffer, "", "\t")
	if err != nil {
		logrus.WithError(err).Warn("failed to indent json for pretty printing")
	}

	return out.String()
}
