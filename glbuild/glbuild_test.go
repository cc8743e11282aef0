package glbuild_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/wiretube/glbuild"
)

func TestUniformDeclarations(t *testing.T) {
	programmer := glbuild.NewDefaultProgrammer()
	vertex, fragment := programmer.Sources()
	for _, src := range []string{vertex, fragment} {
		if !strings.HasPrefix(src, glbuild.VersionStr) {
			t.Errorf("source missing version header:\n%s", src)
		}
		if !strings.HasSuffix(src, "\x00") {
			t.Error("source must be null terminated")
		}
	}
	for u := glbuild.Uniform(0); int(u) < glbuild.NumUniforms; u++ {
		decl := "uniform " + u.Type() + " " + u.String() + ";"
		count := strings.Count(vertex, decl) + strings.Count(fragment, decl)
		if count != 1 {
			t.Errorf("want uniform %q declared once across stages, got %d", decl, count)
		}
	}
	for a := glbuild.Attribute(0); int(a) < glbuild.NumAttributes; a++ {
		decl := "in vec3 " + a.String() + ";"
		if strings.Count(vertex, decl) != 1 {
			t.Errorf("want attribute %q declared once in vertex stage", decl)
		}
	}
}

func TestShadingModel(t *testing.T) {
	_, fragment := glbuild.NewDefaultProgrammer().Sources()
	for _, want := range []string{
		"max(dot(normal, lightDir), 0.0)",
		"pow(max(dot(viewDir, reflectDir), 0.0), uShininess)",
		"* color.rgb",
		"vec4(result, color.a)",
	} {
		if !strings.Contains(fragment, want) {
			t.Errorf("fragment stage missing %q", want)
		}
	}
}

func TestWriteSources(t *testing.T) {
	programmer := glbuild.NewDefaultProgrammer()
	programmer.Header = "#version 300 es"
	programmer.Precision = "mediump"
	var buf bytes.Buffer
	n, err := programmer.WriteSources(&buf)
	if err != nil {
		t.Fatal(err)
	} else if n != buf.Len() {
		t.Fatal("written length mismatch", n, buf.Len())
	}
	src := buf.String()
	if strings.Count(src, "#version 300 es\nprecision mediump float;\n") != 2 {
		t.Errorf("want ES header in both stages:\n%s", src)
	}
	vi := strings.Index(src, "#shader vertex")
	fi := strings.Index(src, "#shader fragment")
	if vi != 0 || fi < vi {
		t.Error("stage directives out of order", vi, fi)
	}
	if strings.IndexByte(src, 0) >= 0 {
		t.Error("combined source must not contain null bytes")
	}
	_, err = programmer.WriteSources(nil)
	if err == nil {
		t.Error("expected error on nil writer")
	}
}

func TestNames(t *testing.T) {
	if glbuild.UniformColor.String() != "color" {
		t.Error("color uniform name must match fragment contract")
	}
	if glbuild.AttribNormal.CName() != "aNormal\x00" {
		t.Error("bad attribute C name", glbuild.AttribNormal.CName())
	}
	if s := glbuild.Uniform(200).String(); s != "Uniform(200)" {
		t.Error("unexpected out of range name", s)
	}
}
