package shader

// Names shared between the GLSL sources and the renderer.
const (
	PositionAttrib = "position"
	TexCoordAttrib = "texture_coord"
	ColorAttrib    = "color"
	UniformBlock   = "View"
	SamplerUniform = "texture_sampler"
)

// UniformBinding is the uniform buffer binding point of the View block.
const UniformBinding = 0

// ────────────────────────────────── Desktop GL ──────────────────────────────────

// GLSL 1.50 matches the 3.2 core context. Attribute locations are queried
// after linking since explicit locations need 3.3.
const spriteVertexShaderGL = `#version 150 core
in vec2 position;
in vec2 texture_coord;
in vec3 color;

layout(std140) uniform View {
    mat4 model;
    mat4 projection;
    vec4 tint;
};

out vec2 frag_uv;
out vec4 frag_color;

void main() {
    frag_uv = texture_coord;
    frag_color = vec4(color, 1.0) * tint;
    gl_Position = projection * model * vec4(position, 0.0, 1.0);
}
`

const spriteFragmentShaderGL = `#version 150 core
in vec2 frag_uv;
in vec4 frag_color;
out vec4 out_color;

uniform sampler2D texture_sampler;

void main() {
    out_color = texture(texture_sampler, frag_uv) * frag_color;
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

func SpriteVertexShader() string {
	return spriteVertexShaderGL
}

func SpriteFragmentShader() string {
	return spriteFragmentShaderGL
}
