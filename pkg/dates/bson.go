package dates

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dates persist as BSON datetimes at UTC midnight so Mongo range filters
// ($lte/$gte on week spans) keep working against them.

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if d.IsZero() {
		return bson.MarshalValue(primitive.Null{})
	}
	return bson.MarshalValue(primitive.NewDateTimeFromTime(d.t))
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeNull:
		*d = Date{}
		return nil
	case bson.TypeDateTime:
		var dt primitive.DateTime
		if err := bson.UnmarshalValue(t, data, &dt); err != nil {
			return err
		}
		*d = FromTime(dt.Time().UTC())
		return nil
	case bson.TypeString:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		if s == "" {
			*d = Date{}
			return nil
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot decode %s into a date", t)
	}
}
