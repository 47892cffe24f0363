package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"customer_name",
			"number_of_guests",
			"booking_date",
			"booking_time",
			"slot_key",
			"cuisine_preference",
			"seating_preference",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"customer_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"number_of_guests": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"booking_date": bson.M{
				"bsonType": "date",
			},

			"booking_time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01]\d|2[0-3]):[0-5]\d$`,
			},

			"slot_key": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}\|([01]\d|2[0-3]):[0-5]\d$`,
			},

			"cuisine_preference": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"special_requests": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"weather_info": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"condition":          bson.M{"bsonType": "string"},
					"raw_condition":      bson.M{"bsonType": "string"},
					"description":        bson.M{"bsonType": "string"},
					"temperature":        bson.M{"bsonType": []string{"double", "int", "long"}},
					"seating_suggestion": bson.M{"bsonType": "string"},
					"voice_suggestion":   bson.M{"bsonType": "string"},
				},
			},

			"seating_preference": bson.M{
				"bsonType": "string",
				"enum":     []string{"indoor", "outdoor"},
			},

			"location": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
