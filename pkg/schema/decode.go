package schema

// FromMap builds a Schema from the generic object tree a JSON parse yields.
// Unknown keys are ignored and wrong-typed values degrade to zero values so
// the validator sees the closest structured approximation of the document.
func FromMap(m map[string]any) *Schema {
	s := &Schema{
		Name:      stringField(m, "name"),
		Tag:       stringField(m, "tag"),
		Class:     stringField(m, "class"),
		Limit:     intField(m, "limit"),
		MinBlocks: intField(m, "min_blocks"),
		MaxBlocks: intField(m, "max_blocks"),
	}

	for _, sm := range objectList(m, "settings") {
		s.Settings = append(s.Settings, decodeSetting(sm))
	}
	for _, bm := range objectList(m, "blocks") {
		s.Blocks = append(s.Blocks, decodeBlock(bm))
	}
	for _, pm := range objectList(m, "presets") {
		s.Presets = append(s.Presets, decodePreset(pm))
	}

	if f := objectField(m, "enabled_on"); f != nil {
		s.EnabledOn = decodeTemplateFilter(f)
	}
	if f := objectField(m, "disabled_on"); f != nil {
		s.DisabledOn = decodeTemplateFilter(f)
	}
	if loc := objectField(m, "locales"); loc != nil {
		for code := range loc {
			s.Locales = append(s.Locales, code)
		}
	}
	return s
}

func decodeSetting(m map[string]any) Setting {
	s := Setting{
		Type:      stringField(m, "type"),
		ID:        stringField(m, "id"),
		Label:     stringField(m, "label"),
		Content:   stringField(m, "content"),
		Info:      stringField(m, "info"),
		Default:   m["default"],
		VisibleIf: stringField(m, "visible_if"),
	}

	switch s.Type {
	case "range":
		s.Payload = RangePayload{
			Min:  floatField(m, "min"),
			Max:  floatField(m, "max"),
			Step: floatField(m, "step"),
			Unit: stringField(m, "unit"),
		}
	case "select", "radio":
		p := OptionsPayload{}
		if raw, ok := m["options"]; ok {
			p.Present = true
			if items, ok := raw.([]any); ok {
				for _, item := range items {
					om, ok := item.(map[string]any)
					if !ok {
						continue
					}
					p.Options = append(p.Options, Option{
						Label: stringField(om, "label"),
						Value: stringField(om, "value"),
					})
				}
			}
		}
		s.Payload = p
	case "product_list", "collection_list":
		s.Payload = ListPayload{Limit: intField(m, "limit")}
	case "metaobject":
		s.Payload = MetaobjectPayload{Type: stringField(m, "metaobject_type")}
	case "video_url":
		p := VideoURLPayload{}
		if raw, ok := m["accept"]; ok {
			p.Present = true
			if items, ok := raw.([]any); ok {
				p.IsArray = true
				for _, item := range items {
					if str, ok := item.(string); ok {
						p.Accept = append(p.Accept, str)
					}
				}
			}
		}
		s.Payload = p
	}
	return s
}

func decodeBlock(m map[string]any) Block {
	b := Block{
		Type:  stringField(m, "type"),
		Name:  stringField(m, "name"),
		Limit: intField(m, "limit"),
	}
	for _, sm := range objectList(m, "settings") {
		b.Settings = append(b.Settings, decodeSetting(sm))
	}
	return b
}

func decodePreset(m map[string]any) Preset {
	p := Preset{Name: stringField(m, "name")}
	if overrides, ok := m["settings"].(map[string]any); ok {
		p.Settings = overrides
	}
	for _, bm := range objectList(m, "blocks") {
		pb := PresetBlock{Type: stringField(bm, "type")}
		if overrides, ok := bm["settings"].(map[string]any); ok {
			pb.Settings = overrides
		}
		p.Blocks = append(p.Blocks, pb)
	}
	return p
}

func decodeTemplateFilter(m map[string]any) *TemplateFilter {
	return &TemplateFilter{
		Templates: stringList(m, "templates"),
		Groups:    stringList(m, "groups"),
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func objectField(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}

func objectList(m map[string]any, key string) []map[string]any {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range raw {
		if om, ok := item.(map[string]any); ok {
			out = append(out, om)
		}
	}
	return out
}

func stringList(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func intField(m map[string]any, key string) *int {
	switch v := m[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	}
	return nil
}

func floatField(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		f := v
		return &f
	case int:
		f := float64(v)
		return &f
	}
	return nil
}
