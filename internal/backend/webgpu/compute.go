//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/fastmath/internal/ndarray"
)

// Backend runs kernels on a GPU through WebGPU.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfoGo

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	pool *bufferPool[*wgpu.Buffer, wgpu.BufferUsage]
}

var (
	resultUsage  = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	stagingUsage = wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst
)

// New creates a WebGPU backend.
// Returns ErrUnavailable if the native library or an adapter is missing.
func New() (backend *Backend, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("%w: native library: %v", ErrUnavailable, r)
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %v", ErrUnavailable, err)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: request adapter: %v", ErrUnavailable, adapterErr)
	}
	// Name falls back to "webgpu" without adapter info.
	adapterInfo, _ := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: request device: %v", ErrUnavailable, deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: no queue", ErrUnavailable)
	}

	return &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		adapterInfo: adapterInfo,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		pool: newBufferPool(func(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
			return device.CreateBuffer(&wgpu.BufferDescriptor{Usage: usage, Size: size})
		}),
	}, nil
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// Release releases all WebGPU resources.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pool != nil {
		b.pool.clear()
	}

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil

	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// PoolStats reports reuse of the result and readback buffers.
func (b *Backend) PoolStats() PoolStats {
	return b.pool.snapshot()
}

// Name returns the backend name.
func (b *Backend) Name() string {
	if b.adapterInfo != nil {
		return fmt.Sprintf("webgpu (%s)", b.adapterInfo.Device)
	}
	return "webgpu"
}

// Device returns the compute device.
func (b *Backend) Device() ndarray.Device {
	return ndarray.WebGPU
}

// Add performs element-wise addition on the GPU.
func (b *Backend) Add(dst, x, y []float32) error {
	return b.runBinaryOp(dst, x, y, "add", addShader)
}

// Sub performs element-wise subtraction on the GPU.
func (b *Backend) Sub(dst, x, y []float32) error {
	return b.runBinaryOp(dst, x, y, "sub", subShader)
}

// compileShader compiles WGSL code into a cached ShaderModule.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout).
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a storage buffer holding data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), size), data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a 16-byte aligned uniform buffer.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	alignedSize := (uint64(len(data)) + 15) &^ 15

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), alignedSize), data)
	buffer.Unmap()

	return buffer
}

// readBuffer copies a GPU buffer into dst through a staging buffer.
func (b *Backend) readBuffer(src *wgpu.Buffer, dst []float32) error {
	size := uint64(len(dst) * 4)

	staging, capacity := b.pool.acquire(size, stagingUsage)

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	b.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		// A failed map may still be pending; never hand the buffer out again.
		b.pool.discard(staging)
		return fmt.Errorf("webgpu: map staging buffer: %w", err)
	}

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(floatBytes(dst), unsafe.Slice((*byte)(mappedPtr), size))
	staging.Unmap()
	b.pool.put(staging, capacity, stagingUsage)

	return nil
}

// runBinaryOp executes an element-wise kernel over equally sized buffers.
func (b *Backend) runBinaryOp(dst, x, y []float32, name, code string) error {
	n := len(dst)
	if n == 0 {
		return nil
	}

	pipeline := b.getOrCreatePipeline(name, b.compileShader(name, code))

	bufferX := b.createBuffer(floatBytes(x), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferX.Release()
	bufferY := b.createBuffer(floatBytes(y), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferY.Release()

	size := uint64(n * 4)
	bufferResult, capacity := b.pool.acquire(size, resultUsage)
	defer b.pool.put(bufferResult, capacity, resultUsage)

	params := make([]byte, 16)
	//nolint:gosec // G115: n is a non-negative buffer length
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	bindGroup := b.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferX, 0, size),
		wgpu.BufferBindingEntry(1, bufferY, 0, size),
		wgpu.BufferBindingEntry(2, bufferResult, 0, size),
		wgpu.BufferBindingEntry(3, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	//nolint:gosec // G115: workgroup count is non-negative
	pass.DispatchWorkgroups(uint32((n+workgroupSize-1)/workgroupSize), 1, 1)
	pass.End()
	b.queue.Submit(encoder.Finish(nil))

	return b.readBuffer(bufferResult, dst)
}

// MatMul computes dst[m×n] = x[m×k] · y[k×n] on the GPU.
func (b *Backend) MatMul(dst, x, y []float32, m, k, n int) error {
	if m == 0 || n == 0 {
		return nil
	}
	if k == 0 {
		clear(dst)
		return nil
	}

	pipeline := b.getOrCreatePipeline("matmul", b.compileShader("matmul", matmulShader))

	bufferX := b.createBuffer(floatBytes(x), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferX.Release()
	bufferY := b.createBuffer(floatBytes(y), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferY.Release()

	resultSize := uint64(m * n * 4)
	bufferResult, capacity := b.pool.acquire(resultSize, resultUsage)
	defer b.pool.put(bufferResult, capacity, resultUsage)

	params := make([]byte, 16)
	//nolint:gosec // G115: dimensions are non-negative
	binary.LittleEndian.PutUint32(params[0:4], uint32(m))
	//nolint:gosec // G115: dimensions are non-negative
	binary.LittleEndian.PutUint32(params[4:8], uint32(k))
	//nolint:gosec // G115: dimensions are non-negative
	binary.LittleEndian.PutUint32(params[8:12], uint32(n))
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	bindGroup := b.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferX, 0, uint64(len(x)*4)),
		wgpu.BufferBindingEntry(1, bufferY, 0, uint64(len(y)*4)),
		wgpu.BufferBindingEntry(2, bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(3, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	//nolint:gosec // G115: workgroup counts are non-negative
	pass.DispatchWorkgroups(uint32((n+matmulTile-1)/matmulTile), uint32((m+matmulTile-1)/matmulTile), 1)
	pass.End()
	b.queue.Submit(encoder.Finish(nil))

	return b.readBuffer(bufferResult, dst)
}

// floatBytes views a float32 slice as bytes without copying.
func floatBytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, length derived from data
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}

// Compile-time check that Backend implements ndarray.Backend.
var _ ndarray.Backend = (*Backend)(nil)
