package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-render-liquid/internal/dynamic"
)

func sampleContext() dynamic.Context {
	return dynamic.Context{
		"name":  dynamic.String("Hello"),
		"count": dynamic.Number(123),
		"ratio": dynamic.Number(float32(456.7)),
		"ips":   dynamic.Array{dynamic.String("172.17.0.2"), dynamic.String("172.17.0.3")},
		"server": dynamic.Object{
			"host": dynamic.String("localhost"),
		},
	}
}

func render(t *testing.T, eng Engine, name, source string, ctx dynamic.Context) string {
	t.Helper()

	tpl, err := eng.Parse(name, source)
	require.NoError(t, err, "%s: Parse should succeed", eng.Name())

	out, err := tpl.Render(ctx)
	require.NoError(t, err, "%s: Render should succeed", eng.Name())

	return out
}

func TestEngines_Render(t *testing.T) {
	tests := []struct {
		engine   string
		template string
		want     string
	}{
		{
			engine:   "liquid",
			template: `{{ name }} {{ count }} {{ ratio }} {{ server.host }}|{% for ip in ips %}<{{ ip }}>{% endfor %}`,
			want:     "Hello 123 456.7 localhost|<172.17.0.2><172.17.0.3>",
		},
		{
			engine:   "handlebars",
			template: `{{name}} {{count}} {{ratio}} {{server.host}}|{{#each ips}}<{{this}}>{{/each}}`,
			want:     "Hello 123 456.7 localhost|<172.17.0.2><172.17.0.3>",
		},
		{
			engine:   "django",
			template: `{{ name }} {{ count }} {{ ratio }} {{ server.host }}|{% for ip in ips %}[{{ ip }}]{% endfor %}`,
			want:     "Hello 123 456.7 localhost|[172.17.0.2][172.17.0.3]",
		},
		{
			engine:   "gotemplate",
			template: `{{.name}} {{.count}} {{.ratio}} {{.server.host}}|{{range .ips}}<{{.}}>{{end}}`,
			want:     "Hello 123 456.7 localhost|<172.17.0.2><172.17.0.3>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			eng, err := Lookup(tt.engine)
			require.NoError(t, err)
			assert.Equal(t, tt.engine, eng.Name())

			assert.Equal(t, tt.want, render(t, eng, "", tt.template, sampleContext()))
		})
	}
}

func TestEngines_LiteralTextUnchanged(t *testing.T) {
	literal := "<?xml version=\"1.0\" ?>\n<values />\n\n"

	contexts := map[string]dynamic.Context{
		"empty":    dynamic.NewContext(),
		"nonempty": sampleContext(),
	}

	for _, name := range Names() {
		for ctxName, ctx := range contexts {
			t.Run(name+"/"+ctxName, func(t *testing.T) {
				eng, err := Lookup(name)
				require.NoError(t, err)
				assert.Equal(t, literal, render(t, eng, "", literal, ctx))
			})
		}
	}
}

func TestEngines_ParseErrors(t *testing.T) {
	tests := map[string]string{
		"liquid":     `{% for x in xs %}unterminated`,
		"handlebars": `{{#each items}}unterminated`,
		"django":     `{% for x in xs %}unterminated`,
		"gotemplate": `{{range .xs}}unterminated`,
	}

	for name, source := range tests {
		t.Run(name, func(t *testing.T) {
			eng, err := Lookup(name)
			require.NoError(t, err)

			tpl, err := eng.Parse("broken", source)
			assert.Error(t, err)
			assert.Nil(t, tpl)
		})
	}
}

func TestLiquid_BooleanAndConditionals(t *testing.T) {
	ctx := dynamic.Context{"enabled": dynamic.Bool(true)}
	out := render(t, NewLiquid(), "", `{{ enabled }}{% if missing %}x{% else %}-{% endif %}`, ctx)
	assert.Equal(t, "true-", out)
}

func TestLiquid_EmptyOutput(t *testing.T) {
	out := render(t, NewLiquid(), "", `{% if missing %}content{% endif %}`, dynamic.NewContext())
	assert.Empty(t, out)
}

func TestHandlebars_Helpers(t *testing.T) {
	ctx := dynamic.Context{
		"name": dynamic.String("hello"),
		"ips":  dynamic.Array{dynamic.String("a"), dynamic.String("b")},
		"kind": dynamic.String("x"),
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "upcase", template: `{{upcase name}}`, want: "HELLO"},
		{name: "downcase", template: `{{downcase "MiXeD"}}`, want: "mixed"},
		{name: "join", template: `{{join ips ","}}`, want: "a,b"},
		{name: "len", template: `{{len ips}}`, want: "2"},
		{name: "default", template: `{{default missing "n/a"}}`, want: "n/a"},
		{name: "eq", template: `{{#if (eq kind "x")}}yes{{else}}no{{/if}}`, want: "yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, NewHandlebars(), "", tt.template, ctx))
		})
	}
}

// TestEngines_NumbersWithoutExponent 大数与小数以定点十进制输出
func TestEngines_NumbersWithoutExponent(t *testing.T) {
	ctx := dynamic.Context{
		"big":   dynamic.Number(float32(1.1529215e18)),
		"tiny":  dynamic.Number(float32(1e-7)),
		"huge":  dynamic.Number(float32(1e20)),
		"edge":  dynamic.Number(float32(9007199254740991)),
		"ratio": dynamic.Number(float32(456.7)),
	}
	want := "1152921500000000000|0.0000001|100000000000000000000|9007199000000000|456.7"

	templates := map[string]string{
		"liquid":     `{{ big }}|{{ tiny }}|{{ huge }}|{{ edge }}|{{ ratio }}`,
		"handlebars": `{{big}}|{{tiny}}|{{huge}}|{{edge}}|{{ratio}}`,
		"django":     `{{ big }}|{{ tiny }}|{{ huge }}|{{ edge }}|{{ ratio }}`,
		"gotemplate": `{{.big}}|{{.tiny}}|{{.huge}}|{{.edge}}|{{.ratio}}`,
	}

	for name, source := range templates {
		t.Run(name, func(t *testing.T) {
			eng, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, want, render(t, eng, "", source, ctx))
		})
	}
}

func TestHandlebars_EscapesValues(t *testing.T) {
	ctx := dynamic.Context{"html": dynamic.String("<b>")}
	assert.Equal(t, "&lt;b&gt;|<b>", render(t, NewHandlebars(), "", `{{html}}|{{{html}}}`, ctx))
}

func TestGoTemplate_Funcs(t *testing.T) {
	t.Setenv("RENDER_LIQUID_TEST_VAR", "from-env")

	ctx := dynamic.Context{
		"port":  dynamic.Number(9090),
		"empty": dynamic.String(""),
		"host":  dynamic.String("toml-host"),
		"off":   dynamic.Bool(false),
		"zero":  dynamic.Number(0),
		"none":  dynamic.Array{},
		"table": dynamic.Object{},
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "env set", template: `{{env "RENDER_LIQUID_TEST_VAR"}}`, want: "from-env"},
		{name: "env default", template: `{{env "RENDER_LIQUID_UNSET_VAR" "fallback"}}`, want: "fallback"},
		{name: "env unset", template: `[{{env "RENDER_LIQUID_UNSET_VAR"}}]`, want: "[]"},
		{name: "default keeps value", template: `{{.port | default 8080}}`, want: "9090"},
		{name: "default on missing", template: `{{.missing | default 8080}}`, want: "8080"},
		{name: "default on empty string", template: `{{.empty | default "x"}}`, want: "x"},
		{name: "env overrides value", template: `{{env "RENDER_LIQUID_TEST_VAR" .host}}`, want: "from-env"},
		{name: "env falls back to value", template: `{{env "RENDER_LIQUID_UNSET_VAR" .host}}`, want: "toml-host"},
		{name: "default keeps false", template: `{{.off | default true}}`, want: "false"},
		{name: "default keeps zero", template: `{{.zero | default 7}}`, want: "0"},
		{name: "default on empty array", template: `{{.none | default "none"}}`, want: "none"},
		{name: "default on empty table", template: `{{.table | default "none"}}`, want: "none"},
		{name: "coalesce", template: `{{coalesce .missing .empty "last"}}`, want: "last"},
		{name: "coalesce picks first set", template: `{{coalesce .missing .host "last"}}`, want: "toml-host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, NewGoTemplate(), "values.tmpl", tt.template, ctx))
		})
	}
}

func TestDjango_InvalidIdentifierFailsRender(t *testing.T) {
	tpl, err := NewDjango().Parse("", "static")
	require.NoError(t, err)

	_, err = tpl.Render(dynamic.Context{"not-an-identifier": dynamic.String("x")})
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	eng, err := Lookup(" Liquid ")
	require.NoError(t, err)
	assert.Equal(t, "liquid", eng.Name())

	_, err = Lookup("mustache")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEngine))
	assert.Contains(t, err.Error(), "mustache")
	assert.Contains(t, err.Error(), "liquid")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"django", "gotemplate", "handlebars", "liquid"}, Names())
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "page.liquid", want: "liquid"},
		{path: "page.HBS", want: "handlebars"},
		{path: "dir/page.handlebars", want: "handlebars"},
		{path: "nginx.conf.j2", want: "django"},
		{path: "page.django", want: "django"},
		{path: "config.gotmpl", want: "gotemplate"},
		{path: "config.tmpl", want: "gotemplate"},
		{path: "template.xml", want: "liquid"},
		{path: "no-extension", want: "liquid"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			eng, err := ForPath(tt.path, Default)
			require.NoError(t, err)
			assert.Equal(t, tt.want, eng.Name())
		})
	}
}

func TestResolve(t *testing.T) {
	eng, err := Resolve("auto", "page.hbs")
	require.NoError(t, err)
	assert.Equal(t, "handlebars", eng.Name())

	eng, err = Resolve("AUTO", "page.xml")
	require.NoError(t, err)
	assert.Equal(t, Default, eng.Name())

	eng, err = Resolve("gotemplate", "page.hbs")
	require.NoError(t, err)
	assert.Equal(t, "gotemplate", eng.Name())

	_, err = Resolve("nope", "page.liquid")
	assert.True(t, errors.Is(err, ErrUnknownEngine))
}
