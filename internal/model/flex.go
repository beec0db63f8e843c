package model

import (
	"bytes"
	"strconv"
)

// Geometry and page numbers cross a serialization boundary where older
// clients send them as quoted strings. FlexFloat and FlexInt accept both
// forms on unmarshal and always emit plain numbers. JSON null decodes to
// the zero value.

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(f), 'f', -1, 64)), nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }

type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	// Accept "2.0" style values as well; they show up when a client
	// round-trips page numbers through a float-only number type.
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*i = FlexInt(int(v))
	return nil
}

func (i FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(i))), nil
}

func (i FlexInt) Int() int { return int(i) }
