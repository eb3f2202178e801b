package icumsg

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// PARSING BENCHMARKS
// =============================================================================

func BenchmarkParse_Literal(b *testing.B) {
	source := "Welcome back. Everything is where you left it."

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(source)
	}
}

func BenchmarkParse_Arguments(b *testing.B) {
	source := "Hello {name}, you have {count} new messages in {folder}."

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(source)
	}
}

func BenchmarkParse_Plural(b *testing.B) {
	source := "{count, plural, offset:1 =0 {nobody} =1 {just you} one {you and # other} other {you and # others}}"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(source)
	}
}

func BenchmarkParse_Select(b *testing.B) {
	source := "{gender, select, female {She} male {He} other {They}} shared {count} photos."

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(source)
	}
}

func BenchmarkParse_Tags(b *testing.B) {
	source := "Read the <guide>getting started guide</guide> or <support>contact support</support>."

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(source)
	}
}

func BenchmarkParse_Complex(b *testing.B) {
	source := `{gender, select,
		female {{count, plural, =0 {She has no items} one {She has <b>#</b> item} other {She has <b>#</b> items}}}
		male {{count, plural, =0 {He has no items} one {He has <b>#</b> item} other {He has <b>#</b> items}}}
		other {{count, plural, =0 {They have no items} one {They have <b>#</b> item} other {They have <b>#</b> items}}}
	} as of {when, date, medium} at {when, time, short}.`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(source)
	}
}

// =============================================================================
// FORMATTING BENCHMARKS
// =============================================================================

func BenchmarkFormat_Simple(b *testing.B) {
	message := MustNew("Hello, {name}!", []string{"en"})
	values := Values{"name": String("Alice")}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

func BenchmarkFormat_Number(b *testing.B) {
	message := MustNew("Balance: {amount, number}", []string{"en"})
	values := Values{"amount": Float(1234567.89)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

func BenchmarkFormat_Currency(b *testing.B) {
	message := MustNew("Total: {amount, number, currency}", []string{"en"})
	values := Values{"amount": Float(99.95)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

func BenchmarkFormat_DateTime(b *testing.B) {
	message := MustNew("Created {when, date, medium} at {when, time, short}", []string{"en"})
	values := Values{"when": Time(time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC))}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

func BenchmarkFormat_Plural(b *testing.B) {
	message := MustNew("{count, plural, one {# item} other {# items}}", []string{"en"})
	values := Values{"count": Int(3)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

func BenchmarkFormat_PluralRussian(b *testing.B) {
	message := MustNew("{n, plural, one {# файл} few {# файла} many {# файлов} other {# файла}}", []string{"ru"})
	values := Values{"n": Int(23)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

func BenchmarkFormat_Select(b *testing.B) {
	message := MustNew("{gender, select, female {She} male {He} other {They}} liked this.", []string{"en"})
	values := Values{"gender": String("female")}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

func BenchmarkFormat_Tags(b *testing.B) {
	message := MustNew("Click <link>here</link> to continue.", []string{"en"})
	values := Values{
		"link": Transform(func(children []Part) any {
			s, _ := PartsString(children)
			return "<a>" + s + "</a>"
		}),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.Format(values)
	}
}

func BenchmarkFormat_Complex(b *testing.B) {
	message := MustNew(`{gender, select,
		female {{count, plural, one {She has # item} other {She has # items}}}
		other {{count, plural, one {They have # item} other {They have # items}}}
	} as of {when, date, short}.`, []string{"en"})
	values := Values{
		"gender": String("female"),
		"count":  Int(42),
		"when":   Time(time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

func BenchmarkFormatToParts(b *testing.B) {
	message := MustNew("Hello {name}, {count, plural, one {# item} other {# items}}", []string{"en"})
	values := Values{"name": String("Alice"), "count": Int(3)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatToParts(values)
	}
}

// =============================================================================
// FORMATTER CACHE BENCHMARKS
// =============================================================================

func BenchmarkFormatterCache_SharedVsFresh(b *testing.B) {
	source := "{amount, number, currency} on {when, date, medium}"
	values := Values{
		"amount": Float(99.95),
		"when":   Time(time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)),
	}

	shared := NewFormatterCache()
	message := MustNew(source, []string{"en"}, WithCache(shared))
	_, _ = message.FormatString(values) // warm

	b.Run("SharedCache", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = message.FormatString(values)
		}
	})

	b.Run("FreshMessage", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fresh := MustNew(source, []string{"en"})
			_, _ = fresh.FormatString(values)
		}
	})
}

func BenchmarkFormatterCache_NumberFormat(b *testing.B) {
	cache := NewFormatterCache()
	options := NumberOptions{Style: NumberStyleDecimal}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.NumberFormat([]string{"en"}, options)
	}
}

func BenchmarkFormatterCache_PluralRules(b *testing.B) {
	cache := NewFormatterCache()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.PluralRules([]string{"en"}, Cardinal)
	}
}

// =============================================================================
// CATALOG BENCHMARKS
// =============================================================================

func BenchmarkCatalog_FormatString(b *testing.B) {
	catalog := NewCatalog()
	_ = catalog.AddMessage("en", "inbox.count", "{n, plural, one {# message} other {# messages}}")
	values := Values{"n": Int(3)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = catalog.FormatString("en", "inbox.count", values)
	}
}

func BenchmarkCatalog_Negotiation(b *testing.B) {
	catalog := NewCatalog()
	_ = catalog.AddMessage("en", "greeting", "Hello")
	_ = catalog.AddMessage("de", "greeting", "Hallo")
	_ = catalog.AddMessage("fr", "greeting", "Bonjour")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = catalog.FormatString("de-AT", "greeting", nil)
	}
}

func BenchmarkCatalog_AddMessage(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		catalog := NewCatalog()
		for j := 0; j < 100; j++ {
			_ = catalog.AddMessage("en", fmt.Sprintf("msg.%d", j), "Hello, {name}!")
		}
	}
}

// =============================================================================
// STORAGE BENCHMARKS
// =============================================================================

func BenchmarkMemoryStore_Save(b *testing.B) {
	store := NewMemoryStore()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(ctx, &StoredMessage{
			Locale: "en",
			ID:     fmt.Sprintf("msg.%d", i%100),
			Source: "Hello, {name}!",
		})
	}
}

func BenchmarkMemoryStore_Get(b *testing.B) {
	store := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		_ = store.Save(ctx, &StoredMessage{
			Locale: "en",
			ID:     fmt.Sprintf("msg.%d", i),
			Source: "Hello, {name}!",
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Get(ctx, "en", fmt.Sprintf("msg.%d", i%100))
	}
}

// =============================================================================
// CONCURRENT ACCESS BENCHMARKS
// =============================================================================

func BenchmarkFormat_Concurrent(b *testing.B) {
	message := MustNew("{count, plural, one {# item} other {# items}}", []string{"en"})

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = message.FormatString(Values{"count": Int(i)})
			i++
		}
	})
}

func BenchmarkCatalog_Concurrent(b *testing.B) {
	catalog := NewCatalog()
	_ = catalog.AddMessage("en", "greeting", "Hello, {name}!")
	values := Values{"name": String("Alice")}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = catalog.FormatString("en", "greeting", values)
		}
	})
}

func BenchmarkMemoryStore_Concurrent(b *testing.B) {
	store := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		_ = store.Save(ctx, &StoredMessage{
			Locale: "en",
			ID:     fmt.Sprintf("msg.%d", i),
			Source: "content",
		})
	}

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = store.Get(ctx, "en", fmt.Sprintf("msg.%d", i%100))
			i++
		}
	})
}

// =============================================================================
// MESSAGE SIZE BENCHMARKS
// =============================================================================

func BenchmarkFormat_SmallMessage(b *testing.B) {
	benchmarkMessageSize(b, 100)
}

func BenchmarkFormat_MediumMessage(b *testing.B) {
	benchmarkMessageSize(b, 1000)
}

func BenchmarkFormat_LargeMessage(b *testing.B) {
	benchmarkMessageSize(b, 10000)
}

func benchmarkMessageSize(b *testing.B, size int) {
	var sb strings.Builder
	sb.WriteString("Start: {user}\n")
	for sb.Len() < size {
		sb.WriteString("Line of content with {x} inside.\n")
	}
	sb.WriteString("End: {count, number}")

	message := MustNew(sb.String(), []string{"en"})
	values := Values{
		"user":  String("Alice"),
		"x":     String("value"),
		"count": Int(42),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

// =============================================================================
// MEMORY ALLOCATION BENCHMARKS
// =============================================================================

func BenchmarkParse_Allocs(b *testing.B) {
	source := "Hello {name}, you have {count, plural, one {# item} other {# items}}."

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(source)
	}
}

func BenchmarkFormat_Allocs(b *testing.B) {
	message := MustNew("Hello {name}, you have {count, plural, one {# item} other {# items}}.", []string{"en"})
	values := Values{"name": String("Alice"), "count": Int(3)}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = message.FormatString(values)
	}
}

// =============================================================================
// COMPREHENSIVE COMPARISON
// =============================================================================

func BenchmarkComparison_ParseVsFormat(b *testing.B) {
	source := "Hello {name}, you have {count, plural, one {# item} other {# items}}."
	values := Values{"name": String("Alice"), "count": Int(3)}

	b.Run("ParseOnly", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Parse(source)
		}
	})

	message := MustNew(source, []string{"en"})
	b.Run("FormatOnly", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = message.FormatString(values)
		}
	})

	b.Run("ParseAndFormat", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fresh, err := New(source, []string{"en"})
			if err != nil {
				b.Fatal(err)
			}
			_, _ = fresh.FormatString(values)
		}
	})
}
