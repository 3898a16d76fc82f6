package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// QuizResult records a finished quiz.
type QuizResult struct {
	ent.Schema
}

func (QuizResult) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizResult) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Comment("Identifies one run of a quiz"),
		field.String("course").
			Default(""),
		field.String("lesson").
			Default(""),
		field.Int("correct"),
		field.Int("wrong"),
		field.Int("success_rate").
			Comment("Percent correct, rounded half up"),
		field.Bool("committed").
			Default(true).
			Comment("False when the stats commit failed"),
	}
}
