package data

import (
	"encoding/json"
	"errors"
)

// Text has same underlying type as the text columns of the ott table
type Text string

var ErrInvalidFieldFormat = errors.New("invalid field format")

/*
UnmarshalJSON lets a record field arrive either as a JSON string or as a JSON number.
The front-end form posts everything as strings, but API clients tend to send
"year": 2020, so a number is kept in its decimal text form instead of failing the
whole request. null decodes to an empty field.
*/
func (t *Text) UnmarshalJSON(jsonValue []byte) error {
	if string(jsonValue) == "null" {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(jsonValue, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(jsonValue, &n); err != nil {
		return ErrInvalidFieldFormat
	}

	*t = Text(n.String())

	return nil
}

// String returns the field as a plain string
func (t Text) String() string {
	return string(t)
}
