package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"session_id",
			"user_id",
			"option",
			"passengers",
			"payment_method",
			"billing_mode",
			"fare",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"session_id": bson.M{
				"bsonType": "string",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"fare": bson.M{
				"bsonType": "object",
				"required": []string{"base_fare", "total"},
				"properties": bson.M{
					"total": bson.M{
						"bsonType": "long",
						"minimum":  0,
					},
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"INITIATED",
					"PAYMENT_PENDING",
					"PAYMENT_SUCCESS",
					"CONFIRMING_PROVIDER",
					"CONFIRMED",
					"REFUNDED",
					"FAILED",
					"CANCELLED",
					"PENDING_APPROVAL",
				},
			},

			"refund_amount": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
