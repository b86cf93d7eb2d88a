package util

import (
	"encoding/json"
	"errors"
	"io"
)

// Result 统一命令输出结构
type Result struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
}

func NewResult(data interface{}, err error) Result {
	if err == nil {
		return Result{Success: true, Data: data}
	}
	res := Result{Success: false, Error: err.Error()}
	var verr *ValidationError
	if errors.As(err, &verr) {
		res.Fields = verr.Fields
	}
	return res
}

func WriteResult(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
