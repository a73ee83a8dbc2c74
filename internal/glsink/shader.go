package glsink

import (
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const ErrTypeShader = "glsink_shader"

const vertexSource = `#version 410 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;

uniform mat4 viewProj;

out vec3 vNormal;

void main() {
	vNormal = normal;
	gl_Position = viewProj * vec4(position, 1.0);
}
`

const fragmentSource = `#version 410 core
in vec3 vNormal;

uniform vec3 lightDir;
uniform vec3 baseColor;

out vec4 fragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), -normalize(lightDir)), 0.0);
	fragColor = vec4(baseColor * (0.35 + 0.65 * diffuse), 1.0);
}
`

// shader is a linked OpenGL program.
type shader struct {
	id uint32
}

func newShader(vertexSrc, fragmentSrc string) (*shader, error) {
	program, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &shader{id: program}, nil
}

func (s *shader) use() {
	gl.UseProgram(s.id)
}

func (s *shader) setVector3(name string, x, y, z float32) {
	gl.Uniform3f(gl.GetUniformLocation(s.id, gl.Str(name+"\x00")), x, y, z)
}

func (s *shader) setMatrix4(name string, value *float32) {
	gl.UniformMatrix4fv(gl.GetUniformLocation(s.id, gl.Str(name+"\x00")), 1, false, value)
}

func (s *shader) delete() {
	gl.DeleteProgram(s.id)
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, errors.New("could not compile vertex shader").Wrap(err)
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, errors.New("could not compile fragment shader").Wrap(err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// shaders can be deleted after linking
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, errors.New("failed to link program").
			WithType(ErrTypeShader).
			WithTag("log", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, errors.New("failed to compile shader").
			WithType(ErrTypeShader).
			WithTag("log", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
