package processing

import (
	"github.com/germanamz/llmgate/pkg/apperr"
	"github.com/tidwall/gjson"
)

// ParseRequest reads a Request from a JSON object holding csv_key, target
// and columns. Each field is checked independently; the first failure is
// returned as an apperr.InvalidInput error. Values are never coerced: a
// non-string key, target or column is rejected.
func ParseRequest(obj gjson.Result) (Request, error) {
	csvKey := obj.Get("csv_key")
	if !csvKey.Exists() {
		return Request{}, apperr.New(apperr.InvalidInput, "csv_key is required in body")
	}
	if csvKey.Type != gjson.String {
		return Request{}, apperr.New(apperr.InvalidInput, "csv_key must be a string")
	}

	target := obj.Get("target")
	if !target.Exists() {
		return Request{}, apperr.New(apperr.InvalidInput, "target is required in body")
	}
	if target.Type != gjson.String {
		return Request{}, apperr.New(apperr.InvalidInput, "target must be a string")
	}

	columns := obj.Get("columns")
	if !columns.IsArray() {
		return Request{}, apperr.New(apperr.InvalidInput, "columns must be a list")
	}

	req := Request{
		CSVKey:  csvKey.Str,
		Target:  target.Str,
		Columns: []string{},
	}
	for _, c := range columns.Array() {
		if c.Type != gjson.String {
			return Request{}, apperr.New(apperr.InvalidInput, "columns must be a list of strings")
		}
		req.Columns = append(req.Columns, c.Str)
	}

	return req, nil
}
