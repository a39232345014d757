package validators

import "go.mongodb.org/mongo-driver/bson"

var PromoRuleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"kind", "min_subtotal", "active"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 40,
			},

			"kind": bson.M{
				"bsonType": "string",
				"enum":     []string{"percent", "flat"},
			},

			"percent": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  100,
			},

			"amount": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"max_discount": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"min_subtotal": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"active": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
