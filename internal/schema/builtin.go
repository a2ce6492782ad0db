package schema

// Builtin returns a registry populated with the stock block catalog.
func Builtin(opts ...RegistryOption) *Registry {
	return NewRegistry(opts...).MustRegister(BuiltinDefinitions()...)
}

// BuiltinDefinitions lists the stock catalog; the first variant of each type is its default.
func BuiltinDefinitions() []Definition {
	headerFields := []Field{
		{Name: "name", Label: "Name", Kind: FieldText},
		{Name: "headline", Label: "Headline", Kind: FieldText},
		{Name: "location", Label: "Location", Kind: FieldText},
		{Name: "avatar", Label: "Avatar", Kind: FieldImage},
	}
	richBody := func(name, label string) []Field {
		return []Field{
			{Name: "title", Label: "Title", Kind: FieldText},
			{Name: name, Label: label, Kind: FieldRichText, LogosField: "logos"},
			{Name: "logos", Label: "Logos", Kind: FieldLogos},
		}
	}
	galleryItems := []Field{
		{Name: "src", Label: "Image", Kind: FieldImage},
		{Name: "caption", Label: "Caption", Kind: FieldText},
	}
	experienceItems := []Field{
		{Name: "role", Label: "Role", Kind: FieldText},
		{Name: "company", Label: "Company", Kind: FieldText},
		{Name: "period", Label: "Period", Kind: FieldText},
		{Name: "summary", Label: "Summary", Kind: FieldTextarea},
	}

	return []Definition{
		{
			Type: "header", Variant: "classic", Label: "Header", Icon: "user", Category: "identity",
			Description: "Name, headline and avatar",
			Fields:      headerFields,
			Defaults:    map[string]any{"name": "Your Name", "headline": "What you do", "location": "", "avatar": ""},
		},
		{
			Type: "header", Variant: "centered", Label: "Header", Icon: "user", Category: "identity",
			Fields:   headerFields,
			Defaults: map[string]any{"name": "Your Name", "headline": "What you do", "location": "", "avatar": ""},
		},
		{
			Type: "header", Variant: "split", Label: "Header", Icon: "user", Category: "identity",
			Fields: append(append([]Field(nil), headerFields...),
				Field{Name: "cover", Label: "Cover", Kind: FieldImage}),
			Defaults: map[string]any{"name": "Your Name", "headline": "What you do", "location": "", "avatar": "", "cover": ""},
		},
		{
			Type: "about", Variant: "default", Label: "About", Icon: "text", Category: "content",
			Description: "A short bio with inline formatting",
			Fields:      richBody("bio", "Bio"),
			Defaults:    map[string]any{"title": "About", "bio": "Tell people **who you are**.", "logos": map[string]any{}},
		},
		{
			Type: "gallery", Variant: "grid", Label: "Gallery", Icon: "image", Category: "media",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "columns", Label: "Columns", Kind: FieldNumber},
				{Name: "images", Label: "Images", Kind: FieldList, Item: galleryItems},
			},
			Defaults: map[string]any{"title": "Gallery", "columns": 3, "images": []any{}},
		},
		{
			Type: "gallery", Variant: "carousel", Label: "Gallery", Icon: "image", Category: "media",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "autoplay", Label: "Autoplay", Kind: FieldBoolean},
				{Name: "images", Label: "Images", Kind: FieldList, Item: galleryItems},
			},
			Defaults: map[string]any{"title": "Gallery", "autoplay": false, "images": []any{}},
		},
		{
			Type: "skills", Variant: "chips", Label: "Skills", Icon: "tag", Category: "content",
			Description: "Skills written as #chips",
			Fields:      richBody("skills", "Skills"),
			Defaults:    map[string]any{"title": "Skills", "skills": "#go #sql", "logos": map[string]any{}},
		},
		{
			Type: "skills", Variant: "bars", Label: "Skills", Icon: "chart", Category: "content",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "items", Label: "Skills", Kind: FieldList, Item: []Field{
					{Name: "name", Label: "Name", Kind: FieldText},
					{Name: "level", Label: "Level", Kind: FieldNumber},
				}},
			},
			Defaults: map[string]any{"title": "Skills", "items": []any{}},
		},
		{
			Type: "experience", Variant: "timeline", Label: "Experience", Icon: "briefcase", Category: "career",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "items", Label: "Positions", Kind: FieldList, Item: experienceItems},
			},
			Defaults: map[string]any{"title": "Experience", "items": []any{}},
		},
		{
			Type: "experience", Variant: "cards", Label: "Experience", Icon: "briefcase", Category: "career",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "items", Label: "Positions", Kind: FieldList, Item: experienceItems},
			},
			Defaults: map[string]any{"title": "Experience", "items": []any{}},
		},
		{
			Type: "projects", Variant: "default", Label: "Projects", Icon: "folder", Category: "career",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "items", Label: "Projects", Kind: FieldList, Item: []Field{
					{Name: "name", Label: "Name", Kind: FieldText},
					{Name: "url", Label: "URL", Kind: FieldURL},
					{Name: "image", Label: "Image", Kind: FieldImage},
					{Name: "description", Label: "Description", Kind: FieldTextarea},
				}},
			},
			Defaults: map[string]any{"title": "Projects", "items": []any{}},
		},
		{
			Type: "education", Variant: "default", Label: "Education", Icon: "book", Category: "career",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "items", Label: "Schools", Kind: FieldList, Item: []Field{
					{Name: "school", Label: "School", Kind: FieldText},
					{Name: "degree", Label: "Degree", Kind: FieldText},
					{Name: "period", Label: "Period", Kind: FieldText},
				}},
			},
			Defaults: map[string]any{"title": "Education", "items": []any{}},
		},
		{
			Type: "links", Variant: "default", Label: "Links", Icon: "link", Category: "identity",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "items", Label: "Links", Kind: FieldList, Item: []Field{
					{Name: "label", Label: "Label", Kind: FieldText},
					{Name: "url", Label: "URL", Kind: FieldURL},
				}},
			},
			Defaults: map[string]any{"title": "Links", "items": []any{}},
		},
		{
			Type: "contact", Variant: "default", Label: "Contact", Icon: "mail", Category: "identity",
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "email", Label: "Email", Kind: FieldText},
				{Name: "message", Label: "Message", Kind: FieldRichText},
				{Name: "show_form", Label: "Show form", Kind: FieldBoolean},
			},
			Defaults: map[string]any{"title": "Contact", "email": "", "message": "Say hello.", "show_form": false},
		},
		{
			Type: "quote", Variant: "default", Label: "Quote", Icon: "quote", Category: "content",
			Fields: []Field{
				{Name: "text", Label: "Quote", Kind: FieldTextarea},
				{Name: "author", Label: "Author", Kind: FieldText},
				{Name: "accent", Label: "Accent", Kind: FieldColor},
			},
			Defaults: map[string]any{"text": "", "author": "", "accent": ""},
		},
		{
			Type: "divider", Variant: "default", Label: "Divider", Icon: "minus", Category: "layout",
			Fields: []Field{
				{Name: "style", Label: "Style", Kind: FieldSelect, Options: []string{"line", "dots", "space"}},
			},
			Defaults: map[string]any{"style": "line"},
		},
		{
			Type: "spacer", Variant: "default", Label: "Spacer", Icon: "expand", Category: "layout",
			Fields: []Field{
				{Name: "size", Label: "Size", Kind: FieldNumber},
			},
			Defaults: map[string]any{"size": 32},
		},
	}
}
