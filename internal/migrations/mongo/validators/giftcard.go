package validators

import "go.mongodb.org/mongo-driver/bson"

var GiftCardValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"balance", "active", "expires_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 4,
				"maxLength": 40,
			},

			"balance": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
