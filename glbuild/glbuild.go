package glbuild

import (
	"errors"
	"io"
	"strconv"
)

const VersionStr = "#version 410 core\n"

// Attribute is a vertex attribute consumed by the line shader.
type Attribute uint8

const (
	AttribPosition Attribute = iota
	AttribNormal
	numAttributes
)

// NumAttributes is the number of vertex attributes consumed by the line shader.
const NumAttributes = int(numAttributes)

var attribNames = [numAttributes]string{
	AttribPosition: "aPosition",
	AttribNormal:   "aNormal",
}

// String returns the GLSL name of the attribute.
func (a Attribute) String() string {
	if a >= numAttributes {
		return "Attribute(" + strconv.Itoa(int(a)) + ")"
	}
	return attribNames[a]
}

// Uniform identifies a uniform variable of the line shader program.
type Uniform uint8

const (
	UniformModelView Uniform = iota
	UniformProjection
	UniformNormalMatrix
	UniformColor
	UniformLightDirection
	UniformViewPosition
	UniformAmbient
	UniformDiffuse
	UniformSpecular
	UniformShininess
	numUniforms
)

// NumUniforms is the number of uniforms declared by the line shader program.
const NumUniforms = int(numUniforms)

var uniformDecls = [numUniforms]struct {
	name, typ string
	vertex    bool
}{
	UniformModelView:      {name: "uModelViewMatrix", typ: "mat4", vertex: true},
	UniformProjection:     {name: "uProjectionMatrix", typ: "mat4", vertex: true},
	UniformNormalMatrix:   {name: "uNormalMatrix", typ: "mat4", vertex: true},
	UniformColor:          {name: "color", typ: "vec4"},
	UniformLightDirection: {name: "uLightDirection", typ: "vec3"},
	UniformViewPosition:   {name: "uViewPosition", typ: "vec3"},
	UniformAmbient:        {name: "uAmbientColor", typ: "vec3"},
	UniformDiffuse:        {name: "uDiffuseColor", typ: "vec3"},
	UniformSpecular:       {name: "uSpecularColor", typ: "vec3"},
	UniformShininess:      {name: "uShininess", typ: "float"},
}

// String returns the GLSL name of the uniform.
func (u Uniform) String() string {
	if u >= numUniforms {
		return "Uniform(" + strconv.Itoa(int(u)) + ")"
	}
	return uniformDecls[u].name
}

// Type returns the GLSL type of the uniform.
func (u Uniform) Type() string {
	if u >= numUniforms {
		return ""
	}
	return uniformDecls[u].typ
}

// CName returns the null terminated name of the uniform for use with GL calls.
func (u Uniform) CName() string { return u.String() + "\x00" }

// CName returns the null terminated name of the attribute for use with GL calls.
func (a Attribute) CName() string { return a.String() + "\x00" }

// Programmer generates the source code of the lit line shader program.
type Programmer struct {
	// Header is written at the start of every stage. Defaults to [VersionStr].
	Header string
	// Precision is a default float precision qualifier such as "mediump" required by GLSL ES.
	// Left empty for desktop GL.
	Precision string
	scratch   []byte
}

// NewDefaultProgrammer returns a Programmer that generates desktop OpenGL 4.1 core shaders.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		Header:  VersionStr,
		scratch: make([]byte, 0, 1024),
	}
}

// AppendVertexSource appends the vertex stage source. Positions are transformed
// by the model-view and projection matrices and normals by the normal matrix.
func (p *Programmer) AppendVertexSource(b []byte) []byte {
	b = p.appendHeader(b)
	b = append(b, "in vec3 "...)
	b = append(b, AttribPosition.String()...)
	b = append(b, ";\nin vec3 "...)
	b = append(b, AttribNormal.String()...)
	b = append(b, ";\n\n"...)
	b = appendUniformDecls(b, true)
	b = append(b, `
out vec3 vNormal;
out vec3 vPosition;

void main() {
	vec4 position = uModelViewMatrix * vec4(aPosition, 1.0);
	vPosition = position.xyz;
	vNormal = normalize(mat3(uNormalMatrix) * aNormal);
	gl_Position = uProjectionMatrix * position;
}
`...)
	return b
}

// AppendFragmentSource appends the fragment stage source which shades a solid color with
// ambient, diffuse and specular terms:
//
//	color.rgb * (ambient + diffuse*max(N·L,0) + specular*max(V·R,0)^shininess)
func (p *Programmer) AppendFragmentSource(b []byte) []byte {
	b = p.appendHeader(b)
	b = appendUniformDecls(b, false)
	b = append(b, `
in vec3 vNormal;
in vec3 vPosition;
out vec4 fragColor;

void main() {
	vec3 normal = normalize(vNormal);
	vec3 lightDir = normalize(uLightDirection);
	float diff = max(dot(normal, lightDir), 0.0);
	vec3 viewDir = normalize(uViewPosition - vPosition);
	vec3 reflectDir = reflect(-lightDir, normal);
	float spec = pow(max(dot(viewDir, reflectDir), 0.0), uShininess);
	vec3 result = (uAmbientColor + diff*uDiffuseColor + spec*uSpecularColor) * color.rgb;
	fragColor = vec4(result, color.a);
}
`...)
	return b
}

// Sources returns the null terminated vertex and fragment stage sources ready for compilation.
func (p *Programmer) Sources() (vertex, fragment string) {
	p.scratch = p.AppendVertexSource(p.scratch[:0])
	p.scratch = append(p.scratch, 0)
	vertex = string(p.scratch)
	p.scratch = p.AppendFragmentSource(p.scratch[:0])
	p.scratch = append(p.scratch, 0)
	fragment = string(p.scratch)
	return vertex, fragment
}

// WriteSources writes both stages to w in the glgl combined source format,
// each stage preceded by its "#shader" directive.
func (p *Programmer) WriteSources(w io.Writer) (n int, err error) {
	if w == nil {
		return 0, errors.New("nil writer")
	}
	p.scratch = append(p.scratch[:0], "#shader vertex\n"...)
	p.scratch = p.AppendVertexSource(p.scratch)
	p.scratch = append(p.scratch, "\n#shader fragment\n"...)
	p.scratch = p.AppendFragmentSource(p.scratch)
	return w.Write(p.scratch)
}

func (p *Programmer) appendHeader(b []byte) []byte {
	header := p.Header
	if header == "" {
		header = VersionStr
	}
	b = append(b, header...)
	if len(header) > 0 && header[len(header)-1] != '\n' {
		b = append(b, '\n')
	}
	if p.Precision != "" {
		b = append(b, "precision "...)
		b = append(b, p.Precision...)
		b = append(b, " float;\n"...)
	}
	return b
}

func appendUniformDecls(b []byte, vertexStage bool) []byte {
	for u := Uniform(0); u < numUniforms; u++ {
		decl := uniformDecls[u]
		if decl.vertex != vertexStage {
			continue
		}
		b = append(b, "uniform "...)
		b = append(b, decl.typ...)
		b = append(b, ' ')
		b = append(b, decl.name...)
		b = append(b, ";\n"...)
	}
	return b
}
