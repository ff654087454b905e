package ai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidModelResponse marks model output that failed strict schema
// validation. Callers must treat it as a hard failure, never a default.
var ErrInvalidModelResponse = errors.New("model response failed schema validation")

var (
	quizSchema       = jsonschema.MustCompileString("quiz.json", quizSchemaJSON)
	gradesSchema     = jsonschema.MustCompileString("grades.json", gradesSchemaJSON)
	planSchema       = jsonschema.MustCompileString("plan.json", planSchemaJSON)
	assessmentSchema = jsonschema.MustCompileString("assessment.json", assessmentSchemaJSON)
	styleSchema      = jsonschema.MustCompileString("style.json", styleSchemaJSON)
	predictionSchema = jsonschema.MustCompileString("prediction.json", predictionSchemaJSON)
	summarySchema    = jsonschema.MustCompileString("summary.json", summarySchemaJSON)
)

// decodeValidated parses the raw model output, validates it against the schema
// and only then unmarshals into the target type.
func decodeValidated(schema *jsonschema.Schema, content string, target interface{}) error {
	var raw interface{}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModelResponse, err)
	}

	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModelResponse, err)
	}

	return json.Unmarshal([]byte(content), target)
}

const quizSchemaJSON = `{
  "type": "object",
  "required": ["title", "questions"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["type", "text", "points"],
        "properties": {
          "type": {"enum": ["multiple-choice", "true-false", "short-answer"]},
          "text": {"type": "string", "minLength": 1},
          "points": {"type": "integer", "minimum": 0},
          "correct_answer": {"type": "string"},
          "explanation": {"type": "string"},
          "options": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["text", "is_correct"],
              "properties": {
                "text": {"type": "string"},
                "is_correct": {"type": "boolean"}
              }
            }
          }
        }
      }
    }
  }
}`

const gradesSchemaJSON = `{
  "type": "object",
  "required": ["grades"],
  "properties": {
    "grades": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question_id", "is_correct", "points_awarded"],
        "properties": {
          "question_id": {"type": "string"},
          "is_correct": {"type": "boolean"},
          "points_awarded": {"type": "integer", "minimum": 0},
          "feedback": {"type": "string"}
        }
      }
    }
  }
}`

const planSchemaJSON = `{
  "type": "object",
  "required": ["title", "sessions"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "sessions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["day", "title", "duration_minutes"],
        "properties": {
          "day": {"type": "integer", "minimum": 1},
          "title": {"type": "string", "minLength": 1},
          "duration_minutes": {"type": "integer", "minimum": 1},
          "material_ids": {"type": "array", "items": {"type": "integer"}},
          "activities": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

const assessmentSchemaJSON = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["text", "options"],
        "properties": {
          "text": {"type": "string", "minLength": 1},
          "options": {"type": "array", "minItems": 2, "items": {"type": "string"}}
        }
      }
    }
  }
}`

const styleSchemaJSON = `{
  "type": "object",
  "required": ["visual", "auditory", "reading", "kinesthetic"],
  "properties": {
    "visual": {"type": "integer", "minimum": 0},
    "auditory": {"type": "integer", "minimum": 0},
    "reading": {"type": "integer", "minimum": 0},
    "kinesthetic": {"type": "integer", "minimum": 0},
    "summary": {"type": "string"}
  }
}`

const predictionSchemaJSON = `{
  "type": "object",
  "required": ["predicted_score", "predicted_grade", "confidence"],
  "properties": {
    "predicted_score": {"type": "number", "minimum": 0, "maximum": 100},
    "predicted_grade": {"type": "string", "minLength": 1},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "weaknesses": {"type": "array", "items": {"type": "string"}},
    "recommendations": {"type": "array", "items": {"type": "string"}}
  }
}`

const summarySchemaJSON = `{
  "type": "object",
  "required": ["summary"],
  "properties": {
    "summary": {"type": "string", "minLength": 1},
    "key_points": {"type": "array", "items": {"type": "string"}},
    "tags": {"type": "array", "items": {"type": "string"}},
    "subject": {"type": "string"},
    "difficulty": {"type": "string"}
  }
}`
