package domain

import (
	"encoding/json"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// A zero value is a valid answer for most input fields, so an absent key
// cannot be told apart from one set to zero after decoding. The input types
// decode through these helpers, which reject documents missing any field
// whose json tag lacks omitempty.

const missingFieldMessage = "Campo obrigatório"

type fieldKey struct {
	json, yaml string
}

func requiredKeys(t reflect.Type) []fieldKey {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var keys []fieldKey
	for i := range t.NumField() {
		f := t.Field(i)
		jsonName, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
		if jsonName == "" || jsonName == "-" || strings.Contains(opts, "omitempty") {
			continue
		}
		yamlName, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		keys = append(keys, fieldKey{json: jsonName, yaml: yamlName})
	}
	return keys
}

// decodeJSON unmarshals data into v, a pointer to a method-free copy of an
// input type, and reports every required key that is absent or null.
func decodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return err
	}

	var val validator
	for _, k := range requiredKeys(reflect.TypeOf(v)) {
		if raw, ok := present[k.json]; !ok || string(raw) == "null" {
			val.add(k.json, missingFieldMessage)
		}
	}
	return val.err()
}

// decodeYAML is decodeJSON for YAML documents. Keys are matched by their
// yaml names and reported by their json names, like Validate does.
func decodeYAML(node *yaml.Node, v any) error {
	if err := node.Decode(v); err != nil {
		return err
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	present := make(map[string]bool)
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i+1].Tag != "!!null" {
				present[node.Content[i].Value] = true
			}
		}
	}

	var val validator
	for _, k := range requiredKeys(reflect.TypeOf(v)) {
		if !present[k.yaml] {
			val.add(k.json, missingFieldMessage)
		}
	}
	return val.err()
}

func (in *FamilyTimeInput) UnmarshalJSON(data []byte) error {
	type plain FamilyTimeInput
	return decodeJSON(data, (*plain)(in))
}

func (in *FamilyTimeInput) UnmarshalYAML(node *yaml.Node) error {
	type plain FamilyTimeInput
	return decodeYAML(node, (*plain)(in))
}

func (in *ScreenTimeInput) UnmarshalJSON(data []byte) error {
	type plain ScreenTimeInput
	return decodeJSON(data, (*plain)(in))
}

func (in *ScreenTimeInput) UnmarshalYAML(node *yaml.Node) error {
	type plain ScreenTimeInput
	return decodeYAML(node, (*plain)(in))
}

func (in *SocialROIInput) UnmarshalJSON(data []byte) error {
	type plain SocialROIInput
	return decodeJSON(data, (*plain)(in))
}

func (in *SocialROIInput) UnmarshalYAML(node *yaml.Node) error {
	type plain SocialROIInput
	return decodeYAML(node, (*plain)(in))
}

func (in *MealsInput) UnmarshalJSON(data []byte) error {
	type plain MealsInput
	return decodeJSON(data, (*plain)(in))
}

func (in *MealsInput) UnmarshalYAML(node *yaml.Node) error {
	type plain MealsInput
	return decodeYAML(node, (*plain)(in))
}

func (in *MomentsInput) UnmarshalJSON(data []byte) error {
	type plain MomentsInput
	return decodeJSON(data, (*plain)(in))
}

func (in *MomentsInput) UnmarshalYAML(node *yaml.Node) error {
	type plain MomentsInput
	return decodeYAML(node, (*plain)(in))
}

func (in *QuizInput) UnmarshalJSON(data []byte) error {
	type plain QuizInput
	return decodeJSON(data, (*plain)(in))
}

func (in *QuizInput) UnmarshalYAML(node *yaml.Node) error {
	type plain QuizInput
	return decodeYAML(node, (*plain)(in))
}
