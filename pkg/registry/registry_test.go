package registry

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zcbus/zcbus-go/pkg/attribute"
	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/log"
	"github.com/zcbus/zcbus-go/pkg/service"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

func TestNewRejectsInvalidInput(t *testing.T) {
	_, err := New(service.ServiceType(9), nil, Options{})
	assert.ErrorIs(t, err, service.ErrInvalidServiceType)

	cfg := config.Default()
	cfg.Global.RootPath = ""
	_, err = New(service.Ipc, cfg, Options{})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	r := newTestRegistry(t, service.Local, testConfig(t))
	_, err = r.PublishSubscribe("")
	assert.ErrorIs(t, err, service.ErrInvalidName)
}

func TestCreateThenOpenWithRequirements(t *testing.T) {
	for _, st := range serviceTypes {
		t.Run(st.String(), func(t *testing.T) {
			r := newTestRegistry(t, st, testConfig(t))

			creator := pending(t, r, "sensor/imu")
			creator.SetMaxPublishers(1)
			creator.SetMaxSubscribers(4)
			f, status := creator.Create()
			require.Equal(t, StatusOK, status)
			defer closeFactory(t, f)

			assert.True(t, f.Created())
			ps := f.StaticConfig().PublishSubscribe
			assert.Equal(t, uint64(1), ps.MaxPublishers)
			assert.Equal(t, uint64(4), ps.MaxSubscribers)
			assert.Equal(t, "u32", ps.Payload.TypeName)
			assert.Equal(t, typedesc.NoHeaderTypeName, ps.UserHeader.TypeName)

			tooMany := pending(t, r, "sensor/imu")
			tooMany.SetMaxSubscribers(8)
			_, status = tooMany.Open()
			assert.Equal(t, MakeStatus(StageOpen, CodeDoesNotSupportRequestedAmountOfSubscribers), status)

			fewer := pending(t, r, "sensor/imu")
			fewer.SetMaxSubscribers(2)
			opened, status := fewer.Open()
			require.Equal(t, StatusOK, status)
			defer closeFactory(t, opened)

			assert.False(t, opened.Created())
			assert.Equal(t, uint64(2), opened.NumberOfNodes())
			assert.Equal(t, f.StaticConfig().ServiceID, opened.StaticConfig().ServiceID)
		})
	}
}

func TestCreateUsesDefaults(t *testing.T) {
	cfg := testConfig(t)
	r := newTestRegistry(t, service.Local, cfg)

	f, status := pending(t, r, "defaults").Create()
	require.Equal(t, StatusOK, status)
	defer closeFactory(t, f)

	d := cfg.Defaults.PublishSubscribe
	want := &PublishSubscribeConfig{
		MaxSubscribers:                    d.MaxSubscribers,
		MaxPublishers:                     d.MaxPublishers,
		MaxNodes:                          d.MaxNodes,
		HistorySize:                       d.PublisherHistorySize,
		SubscriberMaxBufferSize:           d.SubscriberMaxBufferSize,
		SubscriberMaxBorrowedSamples:      d.SubscriberMaxBorrowedSamples,
		PublisherMaxLoanedSamples:         d.PublisherMaxLoanedSamples,
		EnableSafeOverflow:                d.EnableSafeOverflow,
		UnableToDeliverStrategy:           d.UnableToDeliverStrategy,
		SubscriberExpiredConnectionBuffer: d.SubscriberExpiredConnectionBuffer,
		Payload:                           u32Detail,
		UserHeader:                        typedesc.TypeDetail{TypeName: "()", Size: 0, Alignment: 1},
	}
	if diff := cmp.Diff(want, f.StaticConfig().PublishSubscribe); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateTwice(t *testing.T) {
	for _, st := range serviceTypes {
		t.Run(st.String(), func(t *testing.T) {
			r := newTestRegistry(t, st, testConfig(t))

			f, status := pending(t, r, "twice").Create()
			require.Equal(t, StatusOK, status)
			defer closeFactory(t, f)

			_, status = pending(t, r, "twice").Create()
			assert.Equal(t, MakeStatus(StageCreate, CodeAlreadyExists), status)
		})
	}
}

func TestOpenMissing(t *testing.T) {
	for _, st := range serviceTypes {
		t.Run(st.String(), func(t *testing.T) {
			r := newTestRegistry(t, st, testConfig(t))
			_, status := pending(t, r, "missing").Open()
			assert.Equal(t, MakeStatus(StageOpen, CodeDoesNotExist), status)
		})
	}
}

func TestOpenRequiresPayloadDetails(t *testing.T) {
	r := newTestRegistry(t, service.Local, testConfig(t))
	p, err := r.PublishSubscribe("no-payload")
	require.NoError(t, err)

	_, status := p.Open()
	assert.Equal(t, MakeStatus(StageOpen, CodeInternalFailure), status)
	_, status = p.Create()
	assert.Equal(t, MakeStatus(StageCreate, CodeInternalFailure), status)
}

func TestOpenIncompatibleTypes(t *testing.T) {
	r := newTestRegistry(t, service.Local, testConfig(t))
	f, status := pending(t, r, "types").Create()
	require.Equal(t, StatusOK, status)
	defer closeFactory(t, f)

	tests := []struct {
		name  string
		setup func(p *PendingConfig)
	}{
		{"Name", func(p *PendingConfig) {
			p.SetPayloadTypeDetails(typedesc.TypeDetail{TypeName: "i32", Size: 4, Alignment: 4})
		}},
		{"Size", func(p *PendingConfig) {
			p.SetPayloadTypeDetails(typedesc.TypeDetail{TypeName: "u32", Size: 8, Alignment: 4})
		}},
		{"Variant", func(p *PendingConfig) {
			p.SetPayloadTypeDetails(typedesc.TypeDetail{Variant: typedesc.Dynamic, TypeName: "u32", Size: 4, Alignment: 4})
		}},
		{"Alignment", func(p *PendingConfig) {
			p.SetPayloadAlignment(16)
		}},
		{"Header", func(p *PendingConfig) {
			p.SetUserHeaderTypeDetails(u8Detail)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pending(t, r, "types")
			tt.setup(p)
			_, status := p.Open()
			assert.Equal(t, MakeStatus(StageOpen, CodeIncompatibleTypes), status)
		})
	}
}

func TestOpenMinimumRequirements(t *testing.T) {
	r := newTestRegistry(t, service.Local, testConfig(t))

	creator := pending(t, r, "limits")
	creator.SetMaxSubscribers(4)
	creator.SetMaxPublishers(2)
	creator.SetSubscriberMaxBufferSize(4)
	creator.SetHistorySize(2)
	creator.SetSubscriberMaxBorrowedSamples(3)
	creator.SetMaxNodes(5)
	creator.SetEnableSafeOverflow(true)
	creator.SetPayloadAlignment(8)
	f, status := creator.Create()
	require.Equal(t, StatusOK, status)
	defer closeFactory(t, f)

	tests := []struct {
		name  string
		setup func(p *PendingConfig)
		want  Code
	}{
		{"Subscribers", func(p *PendingConfig) { p.SetMaxSubscribers(5) }, CodeDoesNotSupportRequestedAmountOfSubscribers},
		{"Publishers", func(p *PendingConfig) { p.SetMaxPublishers(3) }, CodeDoesNotSupportRequestedAmountOfPublishers},
		{"BufferSize", func(p *PendingConfig) { p.SetSubscriberMaxBufferSize(5) }, CodeDoesNotSupportRequestedMinBufferSize},
		{"History", func(p *PendingConfig) { p.SetHistorySize(3) }, CodeDoesNotSupportRequestedMinHistorySize},
		{"Borrowed", func(p *PendingConfig) { p.SetSubscriberMaxBorrowedSamples(4) }, CodeDoesNotSupportRequestedMinSubscriberBorrowedSamples},
		{"Nodes", func(p *PendingConfig) { p.SetMaxNodes(6) }, CodeDoesNotSupportRequestedAmountOfNodes},
		{"Overflow", func(p *PendingConfig) { p.SetEnableSafeOverflow(false) }, CodeIncompatibleOverflowBehavior},
		{"EqualValues", func(p *PendingConfig) {
			p.SetMaxSubscribers(4)
			p.SetMaxPublishers(2)
			p.SetSubscriberMaxBufferSize(4)
			p.SetHistorySize(2)
			p.SetSubscriberMaxBorrowedSamples(3)
			p.SetMaxNodes(5)
			p.SetEnableSafeOverflow(true)
			p.SetPayloadAlignment(8)
		}, CodeOK},
		{"SmallerAlignment", func(p *PendingConfig) { p.SetPayloadAlignment(2) }, CodeOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pending(t, r, "limits")
			tt.setup(p)
			opened, status := p.Open()
			assert.Equal(t, MakeStatus(StageOpen, tt.want), status)
			closeFactory(t, opened)
		})
	}
}

func TestCreateSettings(t *testing.T) {
	r := newTestRegistry(t, service.Local, testConfig(t))

	t.Run("HistoryLargerThanBuffer", func(t *testing.T) {
		p := pending(t, r, "history")
		p.SetHistorySize(5)
		p.SetSubscriberMaxBufferSize(4)
		_, status := p.Create()
		assert.Equal(t, MakeStatus(StageCreate, CodeSubscriberBufferMustBeLargerThanHistorySize), status)
	})

	t.Run("ZeroCapacitiesRaised", func(t *testing.T) {
		p := pending(t, r, "zero")
		p.SetMaxSubscribers(0)
		p.SetMaxPublishers(0)
		p.SetMaxNodes(0)
		p.SetSubscriberMaxBufferSize(0)
		p.SetSubscriberMaxBorrowedSamples(0)
		f, status := p.Create()
		require.Equal(t, StatusOK, status)
		defer closeFactory(t, f)

		ps := f.StaticConfig().PublishSubscribe
		assert.Equal(t, uint64(1), ps.MaxSubscribers)
		assert.Equal(t, uint64(1), ps.MaxPublishers)
		assert.Equal(t, uint64(1), ps.MaxNodes)
		assert.Equal(t, uint64(1), ps.SubscriberMaxBufferSize)
		assert.Equal(t, uint64(1), ps.SubscriberMaxBorrowedSamples)
	})

	t.Run("AlignmentRoundedUp", func(t *testing.T) {
		p, err := r.PublishSubscribe("align")
		require.NoError(t, err)
		require.Equal(t, StatusOK, p.SetPayloadTypeDetails(u8Detail))
		p.SetPayloadAlignment(3)
		f, status := p.Create()
		require.Equal(t, StatusOK, status)
		defer closeFactory(t, f)

		assert.Equal(t, uint64(4), f.StaticConfig().PublishSubscribe.Payload.Alignment)
	})
}

func TestInvalidTypeDetails(t *testing.T) {
	r := newTestRegistry(t, service.Local, testConfig(t))
	p, err := r.PublishSubscribe("invalid")
	require.NoError(t, err)

	invalid := MakeStatus(StageConfigure, CodeInvalidTypeDetails)
	assert.Equal(t, invalid, p.SetPayloadTypeDetails(typedesc.TypeDetail{TypeName: "", Size: 4, Alignment: 4}))
	assert.Equal(t, invalid, p.SetPayloadTypeDetails(typedesc.TypeDetail{TypeName: "x", Size: 4, Alignment: 3}))
	assert.Equal(t, invalid, p.SetPayloadTypeDetails(typedesc.TypeDetail{TypeName: "x", Size: 6, Alignment: 4}))
	assert.Equal(t, invalid, p.SetUserHeaderTypeDetails(typedesc.TypeDetail{Variant: typedesc.Dynamic, TypeName: "u8", Size: 1, Alignment: 1}))
	assert.Equal(t, StatusOK, p.SetUserHeaderTypeDetails(typedesc.TypeDetail{TypeName: "()", Size: 0, Alignment: 1}))
}

func TestAttributes(t *testing.T) {
	r := newTestRegistry(t, service.Local, testConfig(t))

	specifier := attribute.NewSpecifier().Define("camera", "front").Define("fps", "30")
	f, status := pending(t, r, "attrs").CreateWithAttributes(specifier)
	require.Equal(t, StatusOK, status)
	defer closeFactory(t, f)
	assert.Len(t, f.StaticConfig().Attributes, 2)

	match := attribute.NewVerifier().Require("camera", "front").RequireKey("fps")
	opened, status := pending(t, r, "attrs").OpenWithAttributes(match)
	require.Equal(t, StatusOK, status)
	closeFactory(t, opened)

	for name, v := range map[string]*attribute.Verifier{
		"Value": attribute.NewVerifier().Require("camera", "rear"),
		"Key":   attribute.NewVerifier().RequireKey("exposure"),
	} {
		t.Run(name, func(t *testing.T) {
			_, status := pending(t, r, "attrs").OpenWithAttributes(v)
			assert.Equal(t, MakeStatus(StageOpen, CodeIncompatibleAttributes), status)

			_, status = pending(t, r, "attrs").OpenOrCreateWithAttributes(v)
			assert.Equal(t, MakeStatus(StageOpen, CodeIncompatibleAttributes), status)
		})
	}
}

func TestOpenOrCreateDefinesRequiredAttributes(t *testing.T) {
	r := newTestRegistry(t, service.Local, testConfig(t))

	v := attribute.NewVerifier().Require("owner", "nav")
	f, status := pending(t, r, "ooc-attrs").OpenOrCreateWithAttributes(v)
	require.Equal(t, StatusOK, status)
	defer closeFactory(t, f)

	assert.True(t, f.Created())
	assert.True(t, f.StaticConfig().Attributes.Has("owner", "nav"))
}

func TestOpenOrCreateSequential(t *testing.T) {
	for _, st := range serviceTypes {
		t.Run(st.String(), func(t *testing.T) {
			r := newTestRegistry(t, st, testConfig(t))

			first, status := pending(t, r, "ooc").OpenOrCreate()
			require.Equal(t, StatusOK, status)
			defer closeFactory(t, first)

			second, status := pending(t, r, "ooc").OpenOrCreate()
			require.Equal(t, StatusOK, status)
			defer closeFactory(t, second)

			assert.True(t, first.Created())
			assert.False(t, second.Created())
			assert.Equal(t, uint64(2), second.NumberOfNodes())
		})
	}
}

func TestOpenOrCreateConcurrent(t *testing.T) {
	for _, st := range serviceTypes {
		t.Run(st.String(), func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Global.Service.CreationTimeout = time.Second

			const participants = 16
			factories := make([]*PortFactory, participants)
			statuses := make([]Status, participants)

			var wg sync.WaitGroup
			for i := range participants {
				wg.Add(1)
				go func() {
					defer wg.Done()
					r, err := New(st, cfg, Options{})
					if err != nil {
						statuses[i] = MakeStatus(StageOpenOrCreate, CodeInternalFailure)
						return
					}
					p, _ := r.PublishSubscribe("race")
					p.SetPayloadTypeDetails(u32Detail)
					factories[i], statuses[i] = p.OpenOrCreate()
				}()
			}
			wg.Wait()

			created := 0
			for i, f := range factories {
				require.Equal(t, StatusOK, statuses[i], "participant %d", i)
				if f.Created() {
					created++
				}
			}
			assert.Equal(t, 1, created)
			assert.Equal(t, uint64(participants), factories[0].NumberOfNodes())

			for _, f := range factories {
				closeFactory(t, f)
			}
		})
	}
}

func TestOpenOrCreateUnderChurn(t *testing.T) {
	for _, st := range serviceTypes {
		t.Run(st.String(), func(t *testing.T) {
			cfg := testConfig(t)

			const (
				participants = 8
				rounds       = 100
			)
			var (
				mu       sync.Mutex
				opened   int
				failures []Status
			)

			var wg sync.WaitGroup
			for range participants {
				wg.Add(1)
				go func() {
					defer wg.Done()
					r, err := New(st, cfg, Options{})
					if err != nil {
						mu.Lock()
						failures = append(failures, MakeStatus(StageOpenOrCreate, CodeInternalFailure))
						mu.Unlock()
						return
					}
					for range rounds {
						p, _ := r.PublishSubscribe("churn")
						p.SetPayloadTypeDetails(u32Detail)
						p.SetMaxNodes(64)
						f, status := p.OpenOrCreate()

						mu.Lock()
						if status.OK() {
							opened++
						} else {
							failures = append(failures, status)
						}
						mu.Unlock()
						if f != nil {
							f.Close()
						}
					}
				}()
			}
			wg.Wait()

			assert.Positive(t, opened)
			for _, s := range failures {
				assert.NotEqual(t, CodeHangsInCreation, s.Code(), "status %s", s)
			}

			r := newTestRegistry(t, st, cfg)
			exists, err := r.Exists("churn")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestNodeLimit(t *testing.T) {
	for _, st := range serviceTypes {
		t.Run(st.String(), func(t *testing.T) {
			r := newTestRegistry(t, st, testConfig(t))

			p := pending(t, r, "nodes")
			p.SetMaxNodes(2)
			f, status := p.Create()
			require.Equal(t, StatusOK, status)
			defer closeFactory(t, f)

			second, status := pending(t, r, "nodes").Open()
			require.Equal(t, StatusOK, status)
			defer closeFactory(t, second)

			_, status = pending(t, r, "nodes").Open()
			assert.Equal(t, MakeStatus(StageOpen, CodeExceedsMaxNumberOfNodes), status)
		})
	}
}

func TestLastCloseRemovesService(t *testing.T) {
	for _, st := range serviceTypes {
		t.Run(st.String(), func(t *testing.T) {
			events := &recordingLogger{}
			r, err := New(st, testConfig(t), Options{EventLogger: events})
			require.NoError(t, err)

			f, status := pending(t, r, "lifecycle").Create()
			require.Equal(t, StatusOK, status)
			opened, status := pending(t, r, "lifecycle").Open()
			require.Equal(t, StatusOK, status)

			closeFactory(t, f)
			exists, err := r.Exists("lifecycle")
			require.NoError(t, err)
			assert.True(t, exists, "service removed while a node is attached")

			closeFactory(t, opened)
			closeFactory(t, opened)
			assert.Equal(t, uint64(0), opened.NumberOfNodes())

			exists, err = r.Exists("lifecycle")
			require.NoError(t, err)
			assert.False(t, exists)

			_, status = pending(t, r, "lifecycle").Open()
			assert.Equal(t, MakeStatus(StageOpen, CodeDoesNotExist), status)

			var states []log.ServiceState
			for _, e := range events.snapshot() {
				if e.Lifecycle != nil {
					states = append(states, e.Lifecycle.State)
				}
			}
			assert.Equal(t, []log.ServiceState{
				log.ServiceCreated, log.ServiceOpened, log.ServiceReleased, log.ServiceReleased, log.ServiceDestroyed,
			}, states)
		})
	}
}

func TestCloseNilFactory(t *testing.T) {
	var f *PortFactory
	assert.NoError(t, f.Close())
}

func TestHangsInCreation(t *testing.T) {
	for _, st := range serviceTypes {
		t.Run(st.String(), func(t *testing.T) {
			r := newTestRegistry(t, st, testConfig(t))
			p := pending(t, r, "stuck")

			// A creator that reserved the dynamic config but never published.
			seg, err := r.dynamic.create(p.ServiceID(), 4)
			require.NoError(t, err)
			defer func() {
				seg.close()
				r.dynamic.remove(p.ServiceID())
			}()

			_, status := p.Open()
			assert.Equal(t, MakeStatus(StageOpen, CodeHangsInCreation), status)

			_, status = pending(t, r, "stuck").Create()
			assert.Equal(t, MakeStatus(StageCreate, CodeIsBeingCreatedByAnotherInstance), status)

			_, status = pending(t, r, "stuck").OpenOrCreate()
			assert.Equal(t, MakeStatus(StageOpen, CodeHangsInCreation), status)
		})
	}
}

func TestCorruptedStaticConfig(t *testing.T) {
	cfg := testConfig(t)
	r := newTestRegistry(t, service.Ipc, cfg)
	p := pending(t, r, "corrupt")

	dir := serviceDir(cfg)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, cfg.Global.Prefix+string(p.ServiceID())+cfg.Global.Service.StaticConfigSuffix)
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0x00, 0x13}, 0644))

	_, status := p.Open()
	assert.Equal(t, MakeStatus(StageOpen, CodeServiceInCorruptedState), status)

	_, status = pending(t, r, "corrupt").Create()
	assert.Equal(t, MakeStatus(StageCreate, CodeServiceInCorruptedState), status)
	assert.False(t, r.dynamic.exists(p.ServiceID()), "failed create left a dynamic config behind")
}

func TestIncompatibleVersion(t *testing.T) {
	r := newTestRegistry(t, service.Local, testConfig(t))
	p := pending(t, r, "old")

	sc := &StaticConfig{
		Version:     "9.1.0",
		ServiceID:   p.ServiceID(),
		ServiceName: p.Name(),
		Pattern:     service.PublishSubscribe,
		PublishSubscribe: &PublishSubscribeConfig{
			MaxSubscribers: 1, MaxPublishers: 1, MaxNodes: 1,
			SubscriberMaxBufferSize: 1, SubscriberMaxBorrowedSamples: 1,
			Payload:    u32Detail,
			UserHeader: typedesc.TypeDetail{TypeName: "()", Alignment: 1},
		},
	}
	data, err := EncodeStaticConfig(sc)
	require.NoError(t, err)
	require.NoError(t, r.static.create(p.ServiceID(), data))
	defer r.static.remove(p.ServiceID())

	_, status := p.Open()
	assert.Equal(t, MakeStatus(StageOpen, CodeIncompatibleVersion), status)
}

func TestIpcSharedAcrossRegistries(t *testing.T) {
	cfg := testConfig(t)
	a := newTestRegistry(t, service.Ipc, cfg)
	b := newTestRegistry(t, service.Ipc, cfg)
	local := newTestRegistry(t, service.Local, cfg)
	assert.NotEqual(t, a.NodeID(), b.NodeID())

	f, status := pending(t, a, "shared").Create()
	require.Equal(t, StatusOK, status)
	defer closeFactory(t, f)

	opened, status := pending(t, b, "shared").Open()
	require.Equal(t, StatusOK, status)
	defer closeFactory(t, opened)
	assert.Equal(t, a.NodeID(), opened.StaticConfig().CreatorNode)

	_, status = pending(t, local, "shared").Open()
	assert.Equal(t, MakeStatus(StageOpen, CodeDoesNotExist), status, "local registry sees ipc service")

	list, err := b.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, service.Name("shared"), list[0].ServiceName)

	details, err := b.Details("shared")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), details.Nodes)
	assert.Equal(t, cfg.Defaults.PublishSubscribe.MaxNodes, details.MaxNodes)

	_, err = b.Details("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSorted(t *testing.T) {
	r := newTestRegistry(t, service.Local, testConfig(t))
	for _, name := range []string{"c", "a", "b"} {
		f, status := pending(t, r, name).Create()
		require.Equal(t, StatusOK, status)
		defer closeFactory(t, f)
	}

	list, err := r.List()
	require.NoError(t, err)
	var names []service.Name
	for _, sc := range list {
		names = append(names, sc.ServiceName)
	}
	assert.Equal(t, []service.Name{"a", "b", "c"}, names)
}

func TestNegotiationEvents(t *testing.T) {
	events := &recordingLogger{}
	r, err := New(service.Local, testConfig(t), Options{EventLogger: events})
	require.NoError(t, err)

	f, status := pending(t, r, "events").OpenOrCreate()
	require.Equal(t, StatusOK, status)
	defer closeFactory(t, f)

	p := pending(t, r, "events")
	p.SetMaxSubscribers(100)
	_, status = p.Open()
	require.False(t, status.OK())

	var negotiations []*log.NegotiationEvent
	for _, e := range events.snapshot() {
		assert.Equal(t, r.NodeID(), e.NodeID)
		assert.Equal(t, "events", e.ServiceName)
		if e.Negotiation != nil {
			negotiations = append(negotiations, e.Negotiation)
		}
	}
	require.Len(t, negotiations, 2)

	assert.Equal(t, log.OperationOpenOrCreate, negotiations[0].Operation)
	assert.Equal(t, log.OperationCreate, negotiations[0].Branch)
	assert.Equal(t, 1, negotiations[0].Attempts)
	assert.True(t, negotiations[0].Success)

	assert.Equal(t, log.OperationOpen, negotiations[1].Operation)
	assert.False(t, negotiations[1].Success)
	assert.Equal(t, "OPEN:DOES_NOT_SUPPORT_REQUESTED_AMOUNT_OF_SUBSCRIBERS", negotiations[1].Status)
}
