package shader

// WGSL sources for the playground's render and post-processing passes.
// The fullscreen shaders share a common vertex prologue and a blend helper;
// sources are assembled by string concatenation at package init.

// fullscreenVS draws a single clip-space triangle covering the viewport.
// UVs are derived from the vertex positions with Y flipped for texture space.
const fullscreenVS = `
struct VSOut {
	@builtin(position) pos: vec4<f32>,
	@location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> VSOut {
	var verts = array<vec2<f32>, 3>(
		vec2<f32>(-1.0, -1.0),
		vec2<f32>(3.0, -1.0),
		vec2<f32>(-1.0, 3.0),
	);
	var out: VSOut;
	let p = verts[idx];
	out.pos = vec4<f32>(p, 0.0, 1.0);
	out.uv = vec2<f32>(p.x * 0.5 + 0.5, 1.0 - (p.y * 0.5 + 0.5));
	return out;
}
`

// blendFns implements the effect blend modes in-shader. Modes match the
// effect.BlendMode constants: 0 normal, 1 screen, 2 add, 3 multiply,
// 4 overlay, 5 soft light.
const blendFns = `
fn blend_apply(base: vec3<f32>, blend: vec3<f32>, mode: u32, opacity: f32) -> vec3<f32> {
	var result: vec3<f32>;
	switch mode {
		case 1u: {
			result = vec3<f32>(1.0) - (vec3<f32>(1.0) - base) * (vec3<f32>(1.0) - blend);
		}
		case 2u: {
			result = base + blend;
		}
		case 3u: {
			result = base * blend;
		}
		case 4u: {
			result = select(
				vec3<f32>(1.0) - 2.0 * (vec3<f32>(1.0) - base) * (vec3<f32>(1.0) - blend),
				2.0 * base * blend,
				base < vec3<f32>(0.5),
			);
		}
		case 5u: {
			result = (vec3<f32>(1.0) - 2.0 * blend) * base * base + 2.0 * blend * base;
		}
		default: {
			result = blend;
		}
	}
	return mix(base, clamp(result, vec3<f32>(0.0), vec3<f32>(1.0)), opacity);
}
`

// effectInputs is the shared group(0) layout for every effect pass: the
// previous pass's color output plus the effect's own uniform block.
const effectInputs = `
@group(0) @binding(0) var input_sampler: sampler;
@group(0) @binding(1) var input_tex: texture_2d<f32>;
`

// SceneWGSL is the lit forward pass for glTF meshes. A single directional sun
// plus an ambient term, Blinn-Phong specular shaped by the glTF roughness
// factor, and exposure/Reinhard tone mapping so the composite chain runs LDR.
const SceneWGSL = `
struct Camera {
	view_proj: mat4x4<f32>,
	view: mat4x4<f32>,
	eye: vec4<f32>,
};
@group(0) @binding(0) var<uniform> camera: Camera;

struct Model {
	model: mat4x4<f32>,
};
@group(1) @binding(0) var<uniform> model_u: Model;

struct Lights {
	ambient: vec4<f32>,
	sun_direction: vec4<f32>,
	sun_color: vec4<f32>,
	exposure: vec4<f32>,
};
@group(2) @binding(0) var<uniform> lights: Lights;

struct Material {
	base_color: vec4<f32>,
	factors: vec4<f32>,
};
@group(3) @binding(0) var<uniform> material: Material;
@group(3) @binding(1) var material_sampler: sampler;
@group(3) @binding(2) var base_color_tex: texture_2d<f32>;

struct VSIn {
	@location(0) position: vec3<f32>,
	@location(1) normal: vec3<f32>,
	@location(2) uv: vec2<f32>,
};

struct VSOut {
	@builtin(position) clip_pos: vec4<f32>,
	@location(0) world_pos: vec3<f32>,
	@location(1) normal: vec3<f32>,
	@location(2) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VSIn) -> VSOut {
	var out: VSOut;
	let world = model_u.model * vec4<f32>(in.position, 1.0);
	out.clip_pos = camera.view_proj * world;
	out.world_pos = world.xyz;
	out.normal = normalize((model_u.model * vec4<f32>(in.normal, 0.0)).xyz);
	out.uv = in.uv;
	return out;
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	let albedo = material.base_color * textureSample(base_color_tex, material_sampler, in.uv);
	let n = normalize(in.normal);
	let l = normalize(-lights.sun_direction.xyz);
	let v = normalize(camera.eye.xyz - in.world_pos);
	let h = normalize(l + v);

	let ndotl = max(dot(n, l), 0.0);
	let spec_power = mix(64.0, 4.0, material.factors.y);
	let spec = pow(max(dot(n, h), 0.0), spec_power) * (1.0 - material.factors.y);

	var color = albedo.rgb * (lights.ambient.rgb * lights.ambient.w + lights.sun_color.rgb * lights.sun_color.w * ndotl);
	color += lights.sun_color.rgb * spec * ndotl;

	let exposed = vec3<f32>(1.0) - exp(-color * lights.exposure.x);
	return vec4<f32>(exposed, albedo.a);
}
`

// NormalWGSL renders view-space normals for the SSAO helper pass, encoded
// into [0, 1] for an RGBA8 target.
const NormalWGSL = `
struct Camera {
	view_proj: mat4x4<f32>,
	view: mat4x4<f32>,
	eye: vec4<f32>,
};
@group(0) @binding(0) var<uniform> camera: Camera;

struct Model {
	model: mat4x4<f32>,
};
@group(1) @binding(0) var<uniform> model_u: Model;

struct VSIn {
	@location(0) position: vec3<f32>,
	@location(1) normal: vec3<f32>,
	@location(2) uv: vec2<f32>,
};

struct VSOut {
	@builtin(position) clip_pos: vec4<f32>,
	@location(0) view_normal: vec3<f32>,
};

@vertex
fn vs_main(in: VSIn) -> VSOut {
	var out: VSOut;
	out.clip_pos = camera.view_proj * model_u.model * vec4<f32>(in.position, 1.0);
	out.view_normal = (camera.view * model_u.model * vec4<f32>(in.normal, 0.0)).xyz;
	return out;
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	return vec4<f32>(normalize(in.view_normal) * 0.5 + 0.5, 1.0);
}
`

// BlitWGSL copies a color texture to the bound target. Used for the direct
// draw bypass path where no composite pass is installed.
var BlitWGSL = fullscreenVS + `
@group(0) @binding(0) var blit_sampler: sampler;
@group(0) @binding(1) var blit_tex: texture_2d<f32>;

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	return textureSample(blit_tex, blit_sampler, in.uv);
}
`

// DepthDownsampleWGSL reduces the scene depth buffer to half resolution by
// taking the maximum of a 2x2 footprint, written to an R32Float target.
var DepthDownsampleWGSL = fullscreenVS + `
@group(0) @binding(1) var depth_tex: texture_depth_2d;

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	let dims = vec2<i32>(textureDimensions(depth_tex));
	let coord = min(vec2<i32>(in.uv * vec2<f32>(dims)), dims - vec2<i32>(2));
	let d0 = textureLoad(depth_tex, coord, 0);
	let d1 = textureLoad(depth_tex, coord + vec2<i32>(1, 0), 0);
	let d2 = textureLoad(depth_tex, coord + vec2<i32>(0, 1), 0);
	let d3 = textureLoad(depth_tex, coord + vec2<i32>(1, 1), 0);
	return vec4<f32>(max(max(d0, d1), max(d2, d3)), 0.0, 0.0, 1.0);
}
`

// SMAAWGSL is a single-pass approximation of SMAA: luma edge detection with
// blending weights looked up in the precomputed area texture. The search
// texture steers the sampling direction along detected edges.
var SMAAWGSL = fullscreenVS + effectInputs + blendFns + `
struct SMAAParams {
	blend_mode: u32,
	opacity: f32,
	time: f32,
	edge_threshold: f32,
};
@group(0) @binding(2) var<uniform> params: SMAAParams;

@group(1) @binding(0) var area_tex: texture_2d<f32>;
@group(1) @binding(1) var search_tex: texture_2d<f32>;

fn luma(c: vec3<f32>) -> f32 {
	return dot(c, vec3<f32>(0.2126, 0.7152, 0.0722));
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	let texel = vec2<f32>(1.0) / vec2<f32>(textureDimensions(input_tex));
	let base = textureSample(input_tex, input_sampler, in.uv).rgb;

	let l_c = luma(base);
	let l_l = luma(textureSample(input_tex, input_sampler, in.uv - vec2<f32>(texel.x, 0.0)).rgb);
	let l_r = luma(textureSample(input_tex, input_sampler, in.uv + vec2<f32>(texel.x, 0.0)).rgb);
	let l_t = luma(textureSample(input_tex, input_sampler, in.uv - vec2<f32>(0.0, texel.y)).rgb);
	let l_b = luma(textureSample(input_tex, input_sampler, in.uv + vec2<f32>(0.0, texel.y)).rgb);

	let edge_h = step(params.edge_threshold, abs(l_l - l_c) + abs(l_r - l_c));
	let edge_v = step(params.edge_threshold, abs(l_t - l_c) + abs(l_b - l_c));

	let weights = textureSample(area_tex, input_sampler, vec2<f32>(edge_h, edge_v) * 0.9375).rg;
	let dir = textureSample(search_tex, input_sampler, in.uv).rg * 2.0 - 1.0;

	let blur = (
		textureSample(input_tex, input_sampler, in.uv + dir * texel).rgb +
		textureSample(input_tex, input_sampler, in.uv - dir * texel).rgb +
		textureSample(input_tex, input_sampler, in.uv + vec2<f32>(texel.x, texel.y)).rgb +
		textureSample(input_tex, input_sampler, in.uv - vec2<f32>(texel.x, texel.y)).rgb
	) * 0.25;

	let w = clamp(max(edge_h, edge_v) * max(weights.r + weights.g, 0.35), 0.0, 1.0);
	let aa = mix(base, blur, w);
	return vec4<f32>(blend_apply(base, aa, params.blend_mode, params.opacity), 1.0);
}
`

// SSAOWGSL computes screen-space ambient occlusion from the depth and normal
// helper targets, with a tiling noise texture rotating the sample ring.
// The occlusion term is emitted as a grayscale color; the default multiply
// blend darkens the accumulated image.
var SSAOWGSL = fullscreenVS + effectInputs + blendFns + `
struct SSAOParams {
	blend_mode: u32,
	opacity: f32,
	time: f32,
	radius: f32,
	intensity: f32,
	bias: f32,
	falloff: f32,
	_pad0: f32,
};
@group(0) @binding(2) var<uniform> params: SSAOParams;

@group(1) @binding(0) var normal_tex: texture_2d<f32>;
@group(1) @binding(1) var depth_tex: texture_depth_2d;
@group(1) @binding(2) var noise_tex: texture_2d<f32>;

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	let base = textureSample(input_tex, input_sampler, in.uv).rgb;
	let dims = vec2<f32>(textureDimensions(depth_tex));
	let texel = vec2<f32>(1.0) / dims;

	let center_depth = textureLoad(depth_tex, vec2<i32>(in.uv * (dims - vec2<f32>(1.0))), 0);
	let normal = textureSample(normal_tex, input_sampler, in.uv).xyz * 2.0 - 1.0;

	let noise_uv = fract(in.uv * dims / 4.0);
	let rot = textureSample(noise_tex, input_sampler, noise_uv).xy * 2.0 - 1.0;

	var ring = array<vec2<f32>, 8>(
		vec2<f32>(1.0, 0.0), vec2<f32>(0.7071, 0.7071),
		vec2<f32>(0.0, 1.0), vec2<f32>(-0.7071, 0.7071),
		vec2<f32>(-1.0, 0.0), vec2<f32>(-0.7071, -0.7071),
		vec2<f32>(0.0, -1.0), vec2<f32>(0.7071, -0.7071),
	);

	var occlusion = 0.0;
	for (var i = 0; i < 8; i++) {
		let o = ring[i];
		let rotated = vec2<f32>(o.x * rot.x - o.y * rot.y, o.x * rot.y + o.y * rot.x);
		let tilt = 1.0 - 0.5 * abs(dot(normal.xy, rotated));
		let offset = rotated * params.radius * tilt * texel * 64.0;
		let sample_uv = clamp(in.uv + offset, vec2<f32>(0.0), vec2<f32>(1.0));
		let sample_depth = textureLoad(depth_tex, vec2<i32>(sample_uv * (dims - vec2<f32>(1.0))), 0);
		let diff = center_depth - sample_depth;
		occlusion += step(params.bias, diff) * (1.0 - smoothstep(0.0, params.falloff, diff));
	}

	let ao = clamp(1.0 - params.intensity * occlusion / 8.0, 0.0, 1.0);
	return vec4<f32>(blend_apply(base, vec3<f32>(ao), params.blend_mode, params.opacity), 1.0);
}
`

// BloomWGSL extracts pixels above the luminance threshold and spreads them
// with a 12-tap ring blur, composited with the default screen blend.
var BloomWGSL = fullscreenVS + effectInputs + blendFns + `
struct BloomParams {
	blend_mode: u32,
	opacity: f32,
	time: f32,
	threshold: f32,
	intensity: f32,
	radius: f32,
	smoothing: f32,
	_pad0: f32,
};
@group(0) @binding(2) var<uniform> params: BloomParams;

fn bright(c: vec3<f32>) -> vec3<f32> {
	let l = dot(c, vec3<f32>(0.2126, 0.7152, 0.0722));
	return c * smoothstep(params.threshold, params.threshold + params.smoothing, l);
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	let base = textureSample(input_tex, input_sampler, in.uv).rgb;
	let texel = params.radius / vec2<f32>(textureDimensions(input_tex));

	var taps = array<vec2<f32>, 12>(
		vec2<f32>(1.0, 0.0), vec2<f32>(0.866, 0.5), vec2<f32>(0.5, 0.866),
		vec2<f32>(0.0, 1.0), vec2<f32>(-0.5, 0.866), vec2<f32>(-0.866, 0.5),
		vec2<f32>(-1.0, 0.0), vec2<f32>(-0.866, -0.5), vec2<f32>(-0.5, -0.866),
		vec2<f32>(0.0, -1.0), vec2<f32>(0.5, -0.866), vec2<f32>(0.866, -0.5),
	);

	var glow = bright(base) * 2.0;
	for (var i = 0; i < 12; i++) {
		glow += bright(textureSample(input_tex, input_sampler, in.uv + taps[i] * texel).rgb);
		glow += bright(textureSample(input_tex, input_sampler, in.uv + taps[i] * texel * 2.5).rgb) * 0.5;
	}
	glow = glow / 20.0 * params.intensity;

	return vec4<f32>(blend_apply(base, glow, params.blend_mode, params.opacity), 1.0);
}
`

// VignetteWGSL darkens the frame towards the corners.
var VignetteWGSL = fullscreenVS + effectInputs + blendFns + `
struct VignetteParams {
	blend_mode: u32,
	opacity: f32,
	time: f32,
	offset: f32,
	darkness: f32,
	_pad0: f32,
	_pad1: f32,
	_pad2: f32,
};
@group(0) @binding(2) var<uniform> params: VignetteParams;

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	let base = textureSample(input_tex, input_sampler, in.uv).rgb;
	let d = distance(in.uv, vec2<f32>(0.5));
	let v = smoothstep(0.8, params.offset * 0.799, d * (params.darkness + params.offset));
	return vec4<f32>(blend_apply(base, base * v, params.blend_mode, params.opacity), 1.0);
}
`

// ColorGradeWGSL applies a 2D-packed 3D lookup table (n slices of n*n laid
// out horizontally) to remap colors.
var ColorGradeWGSL = fullscreenVS + effectInputs + blendFns + `
struct ColorGradeParams {
	blend_mode: u32,
	opacity: f32,
	time: f32,
	lut_size: f32,
};
@group(0) @binding(2) var<uniform> params: ColorGradeParams;

@group(1) @binding(0) var lut_tex: texture_2d<f32>;

fn lut_sample(c: vec3<f32>) -> vec3<f32> {
	let n = params.lut_size;
	let scaled = clamp(c, vec3<f32>(0.0), vec3<f32>(1.0)) * (n - 1.0);
	let slice = floor(scaled.b);
	let frac_b = scaled.b - slice;

	let uv_a = vec2<f32>((slice * n + scaled.r + 0.5) / (n * n), (scaled.g + 0.5) / n);
	let uv_b = vec2<f32>((min(slice + 1.0, n - 1.0) * n + scaled.r + 0.5) / (n * n), (scaled.g + 0.5) / n);

	let a = textureSample(lut_tex, input_sampler, uv_a).rgb;
	let b = textureSample(lut_tex, input_sampler, uv_b).rgb;
	return mix(a, b, frac_b);
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	let base = textureSample(input_tex, input_sampler, in.uv).rgb;
	let graded = lut_sample(base);
	return vec4<f32>(blend_apply(base, graded, params.blend_mode, params.opacity), 1.0);
}
`

// GrainWGSL adds animated film grain seeded by the frame time.
var GrainWGSL = fullscreenVS + effectInputs + blendFns + `
struct GrainParams {
	blend_mode: u32,
	opacity: f32,
	time: f32,
	intensity: f32,
};
@group(0) @binding(2) var<uniform> params: GrainParams;

fn rand(co: vec2<f32>) -> f32 {
	return fract(sin(dot(co, vec2<f32>(12.9898, 78.233))) * 43758.5453);
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	let base = textureSample(input_tex, input_sampler, in.uv).rgb;
	let n = rand(in.uv + vec2<f32>(fract(params.time * 1.6180), fract(params.time * 2.7182)));
	let grain = base + (n - 0.5) * params.intensity;
	return vec4<f32>(blend_apply(base, grain, params.blend_mode, params.opacity), 1.0);
}
`
