package odoo

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// datetimeLayout is the wire format Odoo uses for datetime fields.
const datetimeLayout = "2006-01-02 15:04:05"

// Many2One is an Odoo relational field. Odoo serializes a set reference as
// a two-element array [id, "display name"] and an empty one as false.
type Many2One struct {
	ID   int64
	Name string
	Set  bool
}

func (m *Many2One) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		// false means the field is not set.
		*m = Many2One{}
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return eris.Wrap(err, "odoo: decode many2one")
	}
	if len(pair) < 2 {
		return eris.Errorf("odoo: many2one has %d elements, want 2", len(pair))
	}
	var out Many2One
	if err := json.Unmarshal(pair[0], &out.ID); err != nil {
		return eris.Wrap(err, "odoo: decode many2one id")
	}
	if err := json.Unmarshal(pair[1], &out.Name); err != nil {
		return eris.Wrap(err, "odoo: decode many2one name")
	}
	out.Set = true
	*m = out
	return nil
}

func (m Many2One) MarshalJSON() ([]byte, error) {
	if !m.Set {
		return []byte("false"), nil
	}
	return json.Marshal([2]any{m.ID, m.Name})
}

// Datetime is an Odoo datetime field: a "2006-01-02 15:04:05" string when
// set, false when empty. The zero value means unset.
type Datetime struct {
	Time time.Time
	Set  bool
}

func (d *Datetime) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*d = Datetime{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return eris.Wrap(err, "odoo: decode datetime")
	}
	if s == "" {
		*d = Datetime{}
		return nil
	}
	t, err := time.Parse(datetimeLayout, s)
	if err != nil {
		// Some fields come back as bare dates.
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return eris.Wrapf(err, "odoo: parse datetime %q", s)
		}
	}
	*d = Datetime{Time: t, Set: true}
	return nil
}

func (d Datetime) MarshalJSON() ([]byte, error) {
	if !d.Set {
		return []byte("false"), nil
	}
	return json.Marshal(d.Time.Format(datetimeLayout))
}

// IDList is an Odoo many2many field: a list of record ids, or false when empty.
type IDList []int64

func (l *IDList) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*l = nil
		return nil
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return eris.Wrap(err, "odoo: decode id list")
	}
	*l = ids
	return nil
}

// Contains reports whether id is present in the list.
func (l IDList) Contains(id int64) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// String is an Odoo char/selection field, which arrives as false when empty.
type String string

func (s *String) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = ""
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return eris.Wrap(err, "odoo: decode string")
	}
	*s = String(v)
	return nil
}

// Float is an Odoo float field, which arrives as false when empty.
type Float float64

func (f *Float) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return eris.Wrap(err, "odoo: decode float")
	}
	*f = Float(v)
	return nil
}
