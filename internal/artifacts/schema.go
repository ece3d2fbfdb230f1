package artifacts

import "career-predictor/internal/common/validation"

type obj = map[string]interface{}

func arrayOf(items obj) obj { return obj{"type": "array", "items": items} }

var (
	stringType = obj{"type": "string"}
	numberType = obj{"type": "number"}

	envelopeSchema = validation.MustCompile("envelope", obj{
		"type":     "object",
		"required": []interface{}{"kind"},
		"properties": obj{
			"kind": obj{"type": "string", "enum": []interface{}{
				KindLogisticRegression, KindColumnTransformer, KindLabelEncoder, KindMultiLabelBinarizer,
			}},
			"sklearn_version": stringType,
		},
	})

	kindSchemas = map[string]*validation.Schema{
		KindLogisticRegression: validation.MustCompile(KindLogisticRegression, obj{
			"type":     "object",
			"required": []interface{}{"classes", "coef", "intercept"},
			"properties": obj{
				"classes":       obj{"type": "array", "minItems": 2, "items": obj{"type": "integer"}},
				"coef":          obj{"type": "array", "minItems": 1, "items": arrayOf(numberType)},
				"intercept":     arrayOf(numberType),
				"multi_class":   obj{"type": "string", "enum": []interface{}{"multinomial", "ovr"}},
				"n_features_in": obj{"type": "integer", "minimum": 0},
				"probability":   obj{"type": "boolean"},
			},
		}),
		KindColumnTransformer: validation.MustCompile(KindColumnTransformer, obj{
			"type":     "object",
			"required": []interface{}{"transformers"},
			"properties": obj{
				"feature_names_in": arrayOf(stringType),
				"transformers": obj{
					"type":     "array",
					"minItems": 1,
					"items": obj{
						"type":     "object",
						"required": []interface{}{"name", "type", "columns"},
						"properties": obj{
							"name": stringType,
							"type": obj{"type": "string", "enum": []interface{}{
								ComponentStandardScaler, ComponentOneHot, ComponentPassthrough, ComponentDrop,
							}},
							"columns":        arrayOf(stringType),
							"mean":           arrayOf(numberType),
							"scale":          arrayOf(numberType),
							"categories":     arrayOf(arrayOf(stringType)),
							"handle_unknown": obj{"type": "string", "enum": []interface{}{"ignore", "error"}},
						},
					},
				},
			},
		}),
		KindLabelEncoder: validation.MustCompile(KindLabelEncoder, obj{
			"type":     "object",
			"required": []interface{}{"classes"},
			"properties": obj{
				"classes": obj{"type": "array", "minItems": 1, "items": stringType, "uniqueItems": true},
			},
		}),
		KindMultiLabelBinarizer: validation.MustCompile(KindMultiLabelBinarizer, obj{
			"type":     "object",
			"required": []interface{}{"classes"},
			"properties": obj{
				"classes": obj{"type": "array", "items": stringType, "uniqueItems": true},
			},
		}),
	}
)
