package renderer

const trackVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uMVP;
uniform mat3 uNormalMatrix;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    gl_Position = uMVP * vec4(aPosition, 1.0);
    vNormal = uNormalMatrix * aNormal;
    vTexCoord = aTexCoord;
}
`

const trackFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform float uBrightness;
uniform float uAlphaRef;
uniform bool uLit;

out vec4 FragColor;

void main() {
    vec4 tex = texture(uTexture, vTexCoord);
    if (tex.a < uAlphaRef) {
        discard;
    }
    vec3 light = vec3(1.0);
    if (uLit) {
        float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
        light = uAmbient + vec3(diffuse);
    }
    FragColor = vec4(tex.rgb * light * uBrightness, tex.a);
}
`

var trackUniforms = []string{
	"uMVP", "uNormalMatrix", "uTexture", "uLightDir",
	"uAmbient", "uBrightness", "uAlphaRef", "uLit",
}
