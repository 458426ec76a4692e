// Package wgpu provides the GPU console rendering backend using gogpu/wgpu.
//
// The backend compiles console shader programs to SPIR-V via gogpu/naga,
// uploads glyph atlases as RGBA textures, and draws every console of a
// frame in one render pass: clear, then one indexed draw per console in
// submission order.
//
// # Device Acquisition
//
// Two paths provide the GPU device:
//
//   - Shared: a window framework (gogpu) passes its device provider via
//     SetDeviceProvider. The provider must expose HalDevice() any and
//     HalQueue() any returning wgpu/hal types.
//   - Standalone: Init enumerates Vulkan adapters and opens a device,
//     preferring discrete over integrated GPUs.
//
// # Registration
//
// Importing this package registers the backend under the name "wgpu":
//
//	import _ "github.com/gogpu/termgrid/backend/wgpu"
package wgpu
