package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Los clientes históricos mandan cantidades y precios como número o como
// string numérico indistintamente. Los tipos Flex* absorben ambas formas en
// el unmarshal y exponen el valor ya normalizado.

// FlexInt entero que acepta número JSON o string numérico.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		if i, err := strconv.Atoi(s); err == nil {
			*f = FlexInt(i)
			return nil
		}
		fl, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = FlexInt(int(fl))
		return nil
	}
	var fl float64
	if err := json.Unmarshal(data, &fl); err != nil {
		return err
	}
	*f = FlexInt(int(fl))
	return nil
}

func (f FlexInt) Int() int { return int(f) }

// FlexDecimal decimal que acepta número JSON o string numérico.
type FlexDecimal struct {
	decimal.Decimal
}

func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		f.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			f.Decimal = decimal.Zero
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		f.Decimal = d
		return nil
	}
	return f.Decimal.UnmarshalJSON(data)
}

// FlexStock stock de producto que acepta número, string numérico o mapa
// bodega → cantidad (con valores número o string). Un valor plano se asigna
// completo a la bodega doméstica al normalizar.
type FlexStock struct {
	Flat      *int
	PorBodega map[string]any
}

func (f *FlexStock) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '{' {
		return json.Unmarshal(data, &f.PorBodega)
	}
	var fi FlexInt
	if err := fi.UnmarshalJSON(data); err != nil {
		return err
	}
	n := fi.Int()
	f.Flat = &n
	return nil
}
