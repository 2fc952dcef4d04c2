// Package mocks holds testify mocks of the pubsub interfaces. They follow
// the layout mockery produces from .mockery.yaml, including the EXPECT API.
package mocks

import (
	attribute "github.com/zcbus/zcbus-go/pkg/attribute"
	mock "github.com/stretchr/testify/mock"

	registry "github.com/zcbus/zcbus-go/pkg/registry"

	typedesc "github.com/zcbus/zcbus-go/pkg/typedesc"
)

// MockHandle is a mock of pubsub.Handle.
type MockHandle struct {
	mock.Mock
}

type MockHandle_Expecter struct {
	mock *mock.Mock
}

func (_m *MockHandle) EXPECT() *MockHandle_Expecter {
	return &MockHandle_Expecter{mock: &_m.Mock}
}

// Create provides a mock function with no fields
func (_m *MockHandle) Create() (*registry.PortFactory, registry.Status) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 *registry.PortFactory
	var r1 registry.Status
	if rf, ok := ret.Get(0).(func() (*registry.PortFactory, registry.Status)); ok {
		return rf()
	}
	if rf, ok := ret.Get(0).(func() *registry.PortFactory); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*registry.PortFactory)
		}
	}

	if rf, ok := ret.Get(1).(func() registry.Status); ok {
		r1 = rf()
	} else {
		r1 = ret.Get(1).(registry.Status)
	}

	return r0, r1
}

// MockHandle_Create_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Create'
type MockHandle_Create_Call struct {
	*mock.Call
}

// Create is a helper method to define mock.On call
func (_e *MockHandle_Expecter) Create() *MockHandle_Create_Call {
	return &MockHandle_Create_Call{Call: _e.mock.On("Create")}
}

func (_c *MockHandle_Create_Call) Run(run func()) *MockHandle_Create_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockHandle_Create_Call) Return(_a0 *registry.PortFactory, _a1 registry.Status) *MockHandle_Create_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockHandle_Create_Call) RunAndReturn(run func() (*registry.PortFactory, registry.Status)) *MockHandle_Create_Call {
	_c.Call.Return(run)
	return _c
}

// CreateWithAttributes provides a mock function with given fields: _a0
func (_m *MockHandle) CreateWithAttributes(_a0 *attribute.Specifier) (*registry.PortFactory, registry.Status) {
	ret := _m.Called(_a0)

	if len(ret) == 0 {
		panic("no return value specified for CreateWithAttributes")
	}

	var r0 *registry.PortFactory
	var r1 registry.Status
	if rf, ok := ret.Get(0).(func(*attribute.Specifier) (*registry.PortFactory, registry.Status)); ok {
		return rf(_a0)
	}
	if rf, ok := ret.Get(0).(func(*attribute.Specifier) *registry.PortFactory); ok {
		r0 = rf(_a0)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*registry.PortFactory)
		}
	}

	if rf, ok := ret.Get(1).(func(*attribute.Specifier) registry.Status); ok {
		r1 = rf(_a0)
	} else {
		r1 = ret.Get(1).(registry.Status)
	}

	return r0, r1
}

// MockHandle_CreateWithAttributes_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateWithAttributes'
type MockHandle_CreateWithAttributes_Call struct {
	*mock.Call
}

// CreateWithAttributes is a helper method to define mock.On call
//   - _a0 *attribute.Specifier
func (_e *MockHandle_Expecter) CreateWithAttributes(_a0 interface{}) *MockHandle_CreateWithAttributes_Call {
	return &MockHandle_CreateWithAttributes_Call{Call: _e.mock.On("CreateWithAttributes", _a0)}
}

func (_c *MockHandle_CreateWithAttributes_Call) Run(run func(_a0 *attribute.Specifier)) *MockHandle_CreateWithAttributes_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(*attribute.Specifier))
	})
	return _c
}

func (_c *MockHandle_CreateWithAttributes_Call) Return(_a0 *registry.PortFactory, _a1 registry.Status) *MockHandle_CreateWithAttributes_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockHandle_CreateWithAttributes_Call) RunAndReturn(run func(*attribute.Specifier) (*registry.PortFactory, registry.Status)) *MockHandle_CreateWithAttributes_Call {
	_c.Call.Return(run)
	return _c
}

// Open provides a mock function with no fields
func (_m *MockHandle) Open() (*registry.PortFactory, registry.Status) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Open")
	}

	var r0 *registry.PortFactory
	var r1 registry.Status
	if rf, ok := ret.Get(0).(func() (*registry.PortFactory, registry.Status)); ok {
		return rf()
	}
	if rf, ok := ret.Get(0).(func() *registry.PortFactory); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*registry.PortFactory)
		}
	}

	if rf, ok := ret.Get(1).(func() registry.Status); ok {
		r1 = rf()
	} else {
		r1 = ret.Get(1).(registry.Status)
	}

	return r0, r1
}

// MockHandle_Open_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Open'
type MockHandle_Open_Call struct {
	*mock.Call
}

// Open is a helper method to define mock.On call
func (_e *MockHandle_Expecter) Open() *MockHandle_Open_Call {
	return &MockHandle_Open_Call{Call: _e.mock.On("Open")}
}

func (_c *MockHandle_Open_Call) Run(run func()) *MockHandle_Open_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockHandle_Open_Call) Return(_a0 *registry.PortFactory, _a1 registry.Status) *MockHandle_Open_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockHandle_Open_Call) RunAndReturn(run func() (*registry.PortFactory, registry.Status)) *MockHandle_Open_Call {
	_c.Call.Return(run)
	return _c
}

// OpenOrCreate provides a mock function with no fields
func (_m *MockHandle) OpenOrCreate() (*registry.PortFactory, registry.Status) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for OpenOrCreate")
	}

	var r0 *registry.PortFactory
	var r1 registry.Status
	if rf, ok := ret.Get(0).(func() (*registry.PortFactory, registry.Status)); ok {
		return rf()
	}
	if rf, ok := ret.Get(0).(func() *registry.PortFactory); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*registry.PortFactory)
		}
	}

	if rf, ok := ret.Get(1).(func() registry.Status); ok {
		r1 = rf()
	} else {
		r1 = ret.Get(1).(registry.Status)
	}

	return r0, r1
}

// MockHandle_OpenOrCreate_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'OpenOrCreate'
type MockHandle_OpenOrCreate_Call struct {
	*mock.Call
}

// OpenOrCreate is a helper method to define mock.On call
func (_e *MockHandle_Expecter) OpenOrCreate() *MockHandle_OpenOrCreate_Call {
	return &MockHandle_OpenOrCreate_Call{Call: _e.mock.On("OpenOrCreate")}
}

func (_c *MockHandle_OpenOrCreate_Call) Run(run func()) *MockHandle_OpenOrCreate_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockHandle_OpenOrCreate_Call) Return(_a0 *registry.PortFactory, _a1 registry.Status) *MockHandle_OpenOrCreate_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockHandle_OpenOrCreate_Call) RunAndReturn(run func() (*registry.PortFactory, registry.Status)) *MockHandle_OpenOrCreate_Call {
	_c.Call.Return(run)
	return _c
}

// OpenOrCreateWithAttributes provides a mock function with given fields: _a0
func (_m *MockHandle) OpenOrCreateWithAttributes(_a0 *attribute.Verifier) (*registry.PortFactory, registry.Status) {
	ret := _m.Called(_a0)

	if len(ret) == 0 {
		panic("no return value specified for OpenOrCreateWithAttributes")
	}

	var r0 *registry.PortFactory
	var r1 registry.Status
	if rf, ok := ret.Get(0).(func(*attribute.Verifier) (*registry.PortFactory, registry.Status)); ok {
		return rf(_a0)
	}
	if rf, ok := ret.Get(0).(func(*attribute.Verifier) *registry.PortFactory); ok {
		r0 = rf(_a0)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*registry.PortFactory)
		}
	}

	if rf, ok := ret.Get(1).(func(*attribute.Verifier) registry.Status); ok {
		r1 = rf(_a0)
	} else {
		r1 = ret.Get(1).(registry.Status)
	}

	return r0, r1
}

// MockHandle_OpenOrCreateWithAttributes_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'OpenOrCreateWithAttributes'
type MockHandle_OpenOrCreateWithAttributes_Call struct {
	*mock.Call
}

// OpenOrCreateWithAttributes is a helper method to define mock.On call
//   - _a0 *attribute.Verifier
func (_e *MockHandle_Expecter) OpenOrCreateWithAttributes(_a0 interface{}) *MockHandle_OpenOrCreateWithAttributes_Call {
	return &MockHandle_OpenOrCreateWithAttributes_Call{Call: _e.mock.On("OpenOrCreateWithAttributes", _a0)}
}

func (_c *MockHandle_OpenOrCreateWithAttributes_Call) Run(run func(_a0 *attribute.Verifier)) *MockHandle_OpenOrCreateWithAttributes_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(*attribute.Verifier))
	})
	return _c
}

func (_c *MockHandle_OpenOrCreateWithAttributes_Call) Return(_a0 *registry.PortFactory, _a1 registry.Status) *MockHandle_OpenOrCreateWithAttributes_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockHandle_OpenOrCreateWithAttributes_Call) RunAndReturn(run func(*attribute.Verifier) (*registry.PortFactory, registry.Status)) *MockHandle_OpenOrCreateWithAttributes_Call {
	_c.Call.Return(run)
	return _c
}

// OpenWithAttributes provides a mock function with given fields: _a0
func (_m *MockHandle) OpenWithAttributes(_a0 *attribute.Verifier) (*registry.PortFactory, registry.Status) {
	ret := _m.Called(_a0)

	if len(ret) == 0 {
		panic("no return value specified for OpenWithAttributes")
	}

	var r0 *registry.PortFactory
	var r1 registry.Status
	if rf, ok := ret.Get(0).(func(*attribute.Verifier) (*registry.PortFactory, registry.Status)); ok {
		return rf(_a0)
	}
	if rf, ok := ret.Get(0).(func(*attribute.Verifier) *registry.PortFactory); ok {
		r0 = rf(_a0)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*registry.PortFactory)
		}
	}

	if rf, ok := ret.Get(1).(func(*attribute.Verifier) registry.Status); ok {
		r1 = rf(_a0)
	} else {
		r1 = ret.Get(1).(registry.Status)
	}

	return r0, r1
}

// MockHandle_OpenWithAttributes_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'OpenWithAttributes'
type MockHandle_OpenWithAttributes_Call struct {
	*mock.Call
}

// OpenWithAttributes is a helper method to define mock.On call
//   - _a0 *attribute.Verifier
func (_e *MockHandle_Expecter) OpenWithAttributes(_a0 interface{}) *MockHandle_OpenWithAttributes_Call {
	return &MockHandle_OpenWithAttributes_Call{Call: _e.mock.On("OpenWithAttributes", _a0)}
}

func (_c *MockHandle_OpenWithAttributes_Call) Run(run func(_a0 *attribute.Verifier)) *MockHandle_OpenWithAttributes_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(*attribute.Verifier))
	})
	return _c
}

func (_c *MockHandle_OpenWithAttributes_Call) Return(_a0 *registry.PortFactory, _a1 registry.Status) *MockHandle_OpenWithAttributes_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockHandle_OpenWithAttributes_Call) RunAndReturn(run func(*attribute.Verifier) (*registry.PortFactory, registry.Status)) *MockHandle_OpenWithAttributes_Call {
	_c.Call.Return(run)
	return _c
}

// SetEnableSafeOverflow provides a mock function with given fields: _a0
func (_m *MockHandle) SetEnableSafeOverflow(_a0 bool) {
	_m.Called(_a0)
}

// MockHandle_SetEnableSafeOverflow_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetEnableSafeOverflow'
type MockHandle_SetEnableSafeOverflow_Call struct {
	*mock.Call
}

// SetEnableSafeOverflow is a helper method to define mock.On call
//   - _a0 bool
func (_e *MockHandle_Expecter) SetEnableSafeOverflow(_a0 interface{}) *MockHandle_SetEnableSafeOverflow_Call {
	return &MockHandle_SetEnableSafeOverflow_Call{Call: _e.mock.On("SetEnableSafeOverflow", _a0)}
}

func (_c *MockHandle_SetEnableSafeOverflow_Call) Run(run func(_a0 bool)) *MockHandle_SetEnableSafeOverflow_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(bool))
	})
	return _c
}

func (_c *MockHandle_SetEnableSafeOverflow_Call) Return() *MockHandle_SetEnableSafeOverflow_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockHandle_SetEnableSafeOverflow_Call) RunAndReturn(run func(bool)) *MockHandle_SetEnableSafeOverflow_Call {
	_c.Run(run)
	return _c
}

// SetHistorySize provides a mock function with given fields: _a0
func (_m *MockHandle) SetHistorySize(_a0 uint64) {
	_m.Called(_a0)
}

// MockHandle_SetHistorySize_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetHistorySize'
type MockHandle_SetHistorySize_Call struct {
	*mock.Call
}

// SetHistorySize is a helper method to define mock.On call
//   - _a0 uint64
func (_e *MockHandle_Expecter) SetHistorySize(_a0 interface{}) *MockHandle_SetHistorySize_Call {
	return &MockHandle_SetHistorySize_Call{Call: _e.mock.On("SetHistorySize", _a0)}
}

func (_c *MockHandle_SetHistorySize_Call) Run(run func(_a0 uint64)) *MockHandle_SetHistorySize_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uint64))
	})
	return _c
}

func (_c *MockHandle_SetHistorySize_Call) Return() *MockHandle_SetHistorySize_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockHandle_SetHistorySize_Call) RunAndReturn(run func(uint64)) *MockHandle_SetHistorySize_Call {
	_c.Run(run)
	return _c
}

// SetMaxNodes provides a mock function with given fields: _a0
func (_m *MockHandle) SetMaxNodes(_a0 uint64) {
	_m.Called(_a0)
}

// MockHandle_SetMaxNodes_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetMaxNodes'
type MockHandle_SetMaxNodes_Call struct {
	*mock.Call
}

// SetMaxNodes is a helper method to define mock.On call
//   - _a0 uint64
func (_e *MockHandle_Expecter) SetMaxNodes(_a0 interface{}) *MockHandle_SetMaxNodes_Call {
	return &MockHandle_SetMaxNodes_Call{Call: _e.mock.On("SetMaxNodes", _a0)}
}

func (_c *MockHandle_SetMaxNodes_Call) Run(run func(_a0 uint64)) *MockHandle_SetMaxNodes_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uint64))
	})
	return _c
}

func (_c *MockHandle_SetMaxNodes_Call) Return() *MockHandle_SetMaxNodes_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockHandle_SetMaxNodes_Call) RunAndReturn(run func(uint64)) *MockHandle_SetMaxNodes_Call {
	_c.Run(run)
	return _c
}

// SetMaxPublishers provides a mock function with given fields: _a0
func (_m *MockHandle) SetMaxPublishers(_a0 uint64) {
	_m.Called(_a0)
}

// MockHandle_SetMaxPublishers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetMaxPublishers'
type MockHandle_SetMaxPublishers_Call struct {
	*mock.Call
}

// SetMaxPublishers is a helper method to define mock.On call
//   - _a0 uint64
func (_e *MockHandle_Expecter) SetMaxPublishers(_a0 interface{}) *MockHandle_SetMaxPublishers_Call {
	return &MockHandle_SetMaxPublishers_Call{Call: _e.mock.On("SetMaxPublishers", _a0)}
}

func (_c *MockHandle_SetMaxPublishers_Call) Run(run func(_a0 uint64)) *MockHandle_SetMaxPublishers_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uint64))
	})
	return _c
}

func (_c *MockHandle_SetMaxPublishers_Call) Return() *MockHandle_SetMaxPublishers_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockHandle_SetMaxPublishers_Call) RunAndReturn(run func(uint64)) *MockHandle_SetMaxPublishers_Call {
	_c.Run(run)
	return _c
}

// SetMaxSubscribers provides a mock function with given fields: _a0
func (_m *MockHandle) SetMaxSubscribers(_a0 uint64) {
	_m.Called(_a0)
}

// MockHandle_SetMaxSubscribers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetMaxSubscribers'
type MockHandle_SetMaxSubscribers_Call struct {
	*mock.Call
}

// SetMaxSubscribers is a helper method to define mock.On call
//   - _a0 uint64
func (_e *MockHandle_Expecter) SetMaxSubscribers(_a0 interface{}) *MockHandle_SetMaxSubscribers_Call {
	return &MockHandle_SetMaxSubscribers_Call{Call: _e.mock.On("SetMaxSubscribers", _a0)}
}

func (_c *MockHandle_SetMaxSubscribers_Call) Run(run func(_a0 uint64)) *MockHandle_SetMaxSubscribers_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uint64))
	})
	return _c
}

func (_c *MockHandle_SetMaxSubscribers_Call) Return() *MockHandle_SetMaxSubscribers_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockHandle_SetMaxSubscribers_Call) RunAndReturn(run func(uint64)) *MockHandle_SetMaxSubscribers_Call {
	_c.Run(run)
	return _c
}

// SetPayloadAlignment provides a mock function with given fields: _a0
func (_m *MockHandle) SetPayloadAlignment(_a0 uint64) {
	_m.Called(_a0)
}

// MockHandle_SetPayloadAlignment_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetPayloadAlignment'
type MockHandle_SetPayloadAlignment_Call struct {
	*mock.Call
}

// SetPayloadAlignment is a helper method to define mock.On call
//   - _a0 uint64
func (_e *MockHandle_Expecter) SetPayloadAlignment(_a0 interface{}) *MockHandle_SetPayloadAlignment_Call {
	return &MockHandle_SetPayloadAlignment_Call{Call: _e.mock.On("SetPayloadAlignment", _a0)}
}

func (_c *MockHandle_SetPayloadAlignment_Call) Run(run func(_a0 uint64)) *MockHandle_SetPayloadAlignment_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uint64))
	})
	return _c
}

func (_c *MockHandle_SetPayloadAlignment_Call) Return() *MockHandle_SetPayloadAlignment_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockHandle_SetPayloadAlignment_Call) RunAndReturn(run func(uint64)) *MockHandle_SetPayloadAlignment_Call {
	_c.Run(run)
	return _c
}

// SetPayloadTypeDetails provides a mock function with given fields: _a0
func (_m *MockHandle) SetPayloadTypeDetails(_a0 typedesc.TypeDetail) registry.Status {
	ret := _m.Called(_a0)

	if len(ret) == 0 {
		panic("no return value specified for SetPayloadTypeDetails")
	}

	var r0 registry.Status
	if rf, ok := ret.Get(0).(func(typedesc.TypeDetail) registry.Status); ok {
		r0 = rf(_a0)
	} else {
		r0 = ret.Get(0).(registry.Status)
	}

	return r0
}

// MockHandle_SetPayloadTypeDetails_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetPayloadTypeDetails'
type MockHandle_SetPayloadTypeDetails_Call struct {
	*mock.Call
}

// SetPayloadTypeDetails is a helper method to define mock.On call
//   - _a0 typedesc.TypeDetail
func (_e *MockHandle_Expecter) SetPayloadTypeDetails(_a0 interface{}) *MockHandle_SetPayloadTypeDetails_Call {
	return &MockHandle_SetPayloadTypeDetails_Call{Call: _e.mock.On("SetPayloadTypeDetails", _a0)}
}

func (_c *MockHandle_SetPayloadTypeDetails_Call) Run(run func(_a0 typedesc.TypeDetail)) *MockHandle_SetPayloadTypeDetails_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(typedesc.TypeDetail))
	})
	return _c
}

func (_c *MockHandle_SetPayloadTypeDetails_Call) Return(_a0 registry.Status) *MockHandle_SetPayloadTypeDetails_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockHandle_SetPayloadTypeDetails_Call) RunAndReturn(run func(typedesc.TypeDetail) registry.Status) *MockHandle_SetPayloadTypeDetails_Call {
	_c.Call.Return(run)
	return _c
}

// SetSubscriberMaxBorrowedSamples provides a mock function with given fields: _a0
func (_m *MockHandle) SetSubscriberMaxBorrowedSamples(_a0 uint64) {
	_m.Called(_a0)
}

// MockHandle_SetSubscriberMaxBorrowedSamples_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetSubscriberMaxBorrowedSamples'
type MockHandle_SetSubscriberMaxBorrowedSamples_Call struct {
	*mock.Call
}

// SetSubscriberMaxBorrowedSamples is a helper method to define mock.On call
//   - _a0 uint64
func (_e *MockHandle_Expecter) SetSubscriberMaxBorrowedSamples(_a0 interface{}) *MockHandle_SetSubscriberMaxBorrowedSamples_Call {
	return &MockHandle_SetSubscriberMaxBorrowedSamples_Call{Call: _e.mock.On("SetSubscriberMaxBorrowedSamples", _a0)}
}

func (_c *MockHandle_SetSubscriberMaxBorrowedSamples_Call) Run(run func(_a0 uint64)) *MockHandle_SetSubscriberMaxBorrowedSamples_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uint64))
	})
	return _c
}

func (_c *MockHandle_SetSubscriberMaxBorrowedSamples_Call) Return() *MockHandle_SetSubscriberMaxBorrowedSamples_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockHandle_SetSubscriberMaxBorrowedSamples_Call) RunAndReturn(run func(uint64)) *MockHandle_SetSubscriberMaxBorrowedSamples_Call {
	_c.Run(run)
	return _c
}

// SetSubscriberMaxBufferSize provides a mock function with given fields: _a0
func (_m *MockHandle) SetSubscriberMaxBufferSize(_a0 uint64) {
	_m.Called(_a0)
}

// MockHandle_SetSubscriberMaxBufferSize_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetSubscriberMaxBufferSize'
type MockHandle_SetSubscriberMaxBufferSize_Call struct {
	*mock.Call
}

// SetSubscriberMaxBufferSize is a helper method to define mock.On call
//   - _a0 uint64
func (_e *MockHandle_Expecter) SetSubscriberMaxBufferSize(_a0 interface{}) *MockHandle_SetSubscriberMaxBufferSize_Call {
	return &MockHandle_SetSubscriberMaxBufferSize_Call{Call: _e.mock.On("SetSubscriberMaxBufferSize", _a0)}
}

func (_c *MockHandle_SetSubscriberMaxBufferSize_Call) Run(run func(_a0 uint64)) *MockHandle_SetSubscriberMaxBufferSize_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(uint64))
	})
	return _c
}

func (_c *MockHandle_SetSubscriberMaxBufferSize_Call) Return() *MockHandle_SetSubscriberMaxBufferSize_Call {
	_c.Call.Return()
	return _c
}

func (_c *MockHandle_SetSubscriberMaxBufferSize_Call) RunAndReturn(run func(uint64)) *MockHandle_SetSubscriberMaxBufferSize_Call {
	_c.Run(run)
	return _c
}

// SetUserHeaderTypeDetails provides a mock function with given fields: _a0
func (_m *MockHandle) SetUserHeaderTypeDetails(_a0 typedesc.TypeDetail) registry.Status {
	ret := _m.Called(_a0)

	if len(ret) == 0 {
		panic("no return value specified for SetUserHeaderTypeDetails")
	}

	var r0 registry.Status
	if rf, ok := ret.Get(0).(func(typedesc.TypeDetail) registry.Status); ok {
		r0 = rf(_a0)
	} else {
		r0 = ret.Get(0).(registry.Status)
	}

	return r0
}

// MockHandle_SetUserHeaderTypeDetails_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetUserHeaderTypeDetails'
type MockHandle_SetUserHeaderTypeDetails_Call struct {
	*mock.Call
}

// SetUserHeaderTypeDetails is a helper method to define mock.On call
//   - _a0 typedesc.TypeDetail
func (_e *MockHandle_Expecter) SetUserHeaderTypeDetails(_a0 interface{}) *MockHandle_SetUserHeaderTypeDetails_Call {
	return &MockHandle_SetUserHeaderTypeDetails_Call{Call: _e.mock.On("SetUserHeaderTypeDetails", _a0)}
}

func (_c *MockHandle_SetUserHeaderTypeDetails_Call) Run(run func(_a0 typedesc.TypeDetail)) *MockHandle_SetUserHeaderTypeDetails_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(typedesc.TypeDetail))
	})
	return _c
}

func (_c *MockHandle_SetUserHeaderTypeDetails_Call) Return(_a0 registry.Status) *MockHandle_SetUserHeaderTypeDetails_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockHandle_SetUserHeaderTypeDetails_Call) RunAndReturn(run func(typedesc.TypeDetail) registry.Status) *MockHandle_SetUserHeaderTypeDetails_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockHandle creates a new instance of MockHandle. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockHandle(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockHandle {
	mock := &MockHandle{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
