// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// SetDeviceProvider switches the backend to a shared GPU device from an
// external provider (e.g., a gogpu application context). This avoids
// creating a separate instance and enables device sharing with the host.
//
// The provider's implementation must also expose HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
//
// Any device the backend created itself is released; the shared device is
// not destroyed on Close since the provider owns it.
func (b *Backend) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Release our own resources before adopting the shared device.
	if b.pipeline != nil {
		b.pipeline.Destroy()
		b.pipeline = nil
	}
	if b.gpu != nil && !b.external {
		b.gpu.close()
	}
	b.gpu = nil
	b.initialized = false

	pipeline, err := NewKernelPipeline(device)
	if err != nil {
		return fmt.Errorf("wgpu: pipeline on shared device: %w", err)
	}

	b.gpu = &gpuHandle{device: device, queue: queue, adapter: "shared"}
	b.pipeline = pipeline
	b.external = true
	b.initialized = true

	if b.logger != nil {
		b.logger.Info("wgpu backend using shared device")
	}
	return nil
}
