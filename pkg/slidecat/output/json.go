// Package output serializes verification reports.
package output

import (
	"encoding/json"

	"github.com/ukaji3/slidecat-go/pkg/slidecat/models"
)

// ToJSON serializes a verification report to JSON.
func ToJSON(report *models.VerificationReport, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
