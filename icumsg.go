// Package icumsg implements ICU MessageFormat parsing and formatting with
// pluralization, select branching, rich-text tags and locale-aware number,
// date and time rendering.
//
// Messages use the ICU MessageFormat syntax:
//
//	Hello, {name}! You have {count, plural, one {# message} other {# messages}}.
//
// # Basic Usage
//
// Compile a message for a locale chain and format it with values:
//
//	msg, err := icumsg.New("Hello, {name}!", []string{"en"})
//	result, err := msg.FormatString(icumsg.Values{
//	    "name": icumsg.String("Alice"),
//	})
//	// result: "Hello, Alice!"
//
// # Message Syntax
//
// Arguments are substituted by name, optionally through a typed format:
//
//	{name}                          plain argument
//	{count, number}                 locale-aware number
//	{count, number, currency}       named number preset
//	{when, date, full}              date preset
//	{when, time, short}             time preset
//
// Plural and select arguments branch on the value. Inside a plural branch
// the # placeholder renders the offset-adjusted operand:
//
//	{count, plural, offset:1 =0 {nobody} one {# other} other {# others}}
//	{gender, select, female {her} male {his} other {their}}
//	{place, selectordinal, one {#st} two {#nd} few {#rd} other {#th}}
//
// Exact selectors (=N) and plural categories both match the operand after
// the offset is subtracted, and exact matches always win.
//
// Literal text quotes syntax characters with ASCII apostrophes:
//
//	It''s {n, plural, other {'#'# left}}
//
// # Rich-Text Tags
//
// Tags delegate rendering to caller transforms. A transform receives the
// formatted children and may return any value; non-string results surface
// as object parts from FormatToParts. Without a transform the tag degrades
// to its literal text form.
//
//	msg := icumsg.MustNew("Click <link>here</link>", []string{"en"})
//	result, _ := msg.FormatString(icumsg.Values{
//	    "link": icumsg.Transform(func(children []icumsg.Part) any {
//	        text, _ := icumsg.PartsString(children)
//	        return `<a href="/">` + text + `</a>`
//	    }),
//	})
//
// # Catalogs
//
// A Catalog holds messages for many locales, negotiates requested locales
// against the available ones and shares one formatter cache:
//
//	catalog := icumsg.NewCatalog(icumsg.WithCatalogDefaultLocale("en"))
//	_ = catalog.AddMessage("en", "greeting", "Hello, {name}!")
//	_ = catalog.AddMessage("de", "greeting", "Hallo, {name}!")
//	result, _ := catalog.FormatString("de-AT", "greeting", values)
//
// Catalogs load from YAML, JSON and TOML files (LoadDir, LoadFile), from
// any fs.FS including embed.FS, and hydrate from persistent stores
// (LoadStore) backed by memory, the filesystem or PostgreSQL.
//
// # Error Handling
//
// All failures return structured errors carrying positions and metadata.
// Predicates classify them without string matching:
//
//	_, err := icumsg.New("{count, plural}", []string{"en"})
//	if icumsg.IsSyntaxError(err) {
//	    // handle malformed message
//	}
//
// # Configuration
//
// Customize messages and catalogs with functional options:
//
//	msg, _ := icumsg.New(text, []string{"en"},
//	    icumsg.WithFormats(customPresets),
//	    icumsg.WithCache(sharedCache),
//	    icumsg.WithLogger(logger),
//	)
package icumsg
