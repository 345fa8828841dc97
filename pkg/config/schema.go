package config

import "github.com/invopop/jsonschema"

// Schema reflects a JSON schema describing the settings file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := r.Reflect(&Settings{})
	schema.Title = "projgen settings"
	schema.Description = "Settings file for the projgen project generator"
	return schema
}
