package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validate checks a JSON document against the schema.
func (s *Schema) Validate(raw json.RawMessage) error {
	compiled, err := s.compile()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse %s output: %w", s.Name, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("%s output: %w", s.Name, err)
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		def, err := json.Marshal(s.Definition)
		if err != nil {
			s.compileErr = fmt.Errorf("marshal schema %s: %w", s.Name, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
		if err != nil {
			s.compileErr = fmt.Errorf("parse schema %s: %w", s.Name, err)
			return
		}

		url := "mem://schemas/" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			s.compileErr = fmt.Errorf("add schema %s: %w", s.Name, err)
			return
		}
		s.compiled, s.compileErr = c.Compile(url)
		if s.compileErr != nil {
			s.compileErr = fmt.Errorf("compile schema %s: %w", s.Name, s.compileErr)
		}
	})
	return s.compiled, s.compileErr
}
