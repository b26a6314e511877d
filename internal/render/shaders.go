package render

// Shader sources are fixed, bundled text compiled once at initialization.
// The vertex stage pulses positions with the u_time uniform; the fragment
// stage passes the interpolated vertex color through.

const vertexShaderSource = `
attribute vec3 a_position;
attribute vec4 a_color;

uniform float u_time;

varying vec4 v_color;

void main() {
    float pulse = 1.0 + 0.002 * sin(u_time * 0.001);
    gl_Position = vec4(a_position.xy * pulse, a_position.z, 1.0);
    v_color = a_color;
}
`

const fragmentShaderSource = `
precision mediump float;

varying vec4 v_color;

void main() {
    gl_FragColor = v_color;
}
`
