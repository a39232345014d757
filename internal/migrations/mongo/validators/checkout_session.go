package validators

import "go.mongodb.org/mongo-driver/bson"

var CheckoutSessionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"option",
			"passengers",
			"billing_mode",
			"payment_method",
			"current_step",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"option": bson.M{
				"bsonType": "object",
				"required": []string{"mode", "provider_code", "route_label", "departure_time", "base_fare"},
				"properties": bson.M{
					"mode": bson.M{
						"bsonType": "string",
						"enum":     []string{"flight", "train", "bus", "cab", "mixed"},
					},
					"base_fare": bson.M{
						"bsonType": "long",
						"minimum":  1,
					},
					"departure_time": bson.M{
						"bsonType": "date",
					},
				},
			},

			"passengers": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"maxItems": 9,
			},

			"billing_mode": bson.M{
				"bsonType": "string",
				"enum":     []string{"personal", "corporate"},
			},

			"payment_method": bson.M{
				"bsonType": "string",
				"enum":     []string{"upi", "card", "netbanking", "wallet"},
			},

			"current_step": bson.M{
				"bsonType": "string",
				"enum": []string{
					"REVIEW",
					"SEAT_SELECTION",
					"MEAL_SELECTION",
					"SPECIAL_REQUESTS",
					"PAYMENT",
					"PROCESSING",
					"CONFIRMED",
					"FAILED",
					"PENDING_APPROVAL",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
