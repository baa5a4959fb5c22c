package maintenance

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/AliceO2Group/Maintenance/core/maintenance/sm"
	"github.com/AliceO2Group/Maintenance/core/metrics"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func request(evt sm.Event, privileged bool) sm.Request {
	return sm.Request{Event: evt, Privileged: privileged}
}

var _ = Describe("maintenance transition engine", func() {
	var eng *Engine
	BeforeEach(func() {
		eng = New()
		Expect(eng).NotTo(BeNil())
	})

	When("the engine is created", func() {
		It("should be in ACTIVE", func() {
			Expect(eng.CurrentState()).To(Equal(sm.ACTIVE))
		})
		It("should have an instance ID and no history", func() {
			Expect(eng.ID().String()).NotTo(BeEmpty())
			Expect(eng.History()).To(BeEmpty())
		})
		It("should only offer INIT_MAINTENANCE", func() {
			Expect(eng.AvailableEvents()).To(Equal([]sm.Event{sm.INIT_MAINTENANCE}))
		})
	})

	When("a privileged requester initiates maintenance", func() {
		It("should move to CREATE_TASK_A without output", func() {
			out, err := eng.Submit(request(sm.INIT_MAINTENANCE, true))
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(BeNil())
			Expect(eng.CurrentState()).To(Equal(sm.CREATE_TASK_A))
		})
	})

	When("an unprivileged requester initiates maintenance", func() {
		It("should be rejected and stay in ACTIVE", func() {
			out, err := eng.Submit(request(sm.INIT_MAINTENANCE, false))
			Expect(out).To(BeNil())
			Expect(err).To(MatchError(ErrTransitionRejected))
			Expect(eng.CurrentState()).To(Equal(sm.ACTIVE))
		})
		It("should report the state and event it was rejected for", func() {
			_, err := eng.Submit(request(sm.INIT_MAINTENANCE, false))
			var rejected *RejectedError
			Expect(errors.As(err, &rejected)).To(BeTrue())
			Expect(rejected.State).To(Equal(sm.ACTIVE))
			Expect(rejected.Event).To(Equal(sm.INIT_MAINTENANCE))
			Expect(rejected.Reason).To(Equal("guard not satisfied"))
		})
	})

	When("task A completion is reported while ACTIVE", func() {
		It("should be rejected even for a privileged requester", func() {
			_, err := eng.Submit(request(sm.TASK_A_COMPLETED, true))
			Expect(errors.Is(err, ErrTransitionRejected)).To(BeTrue())
			Expect(eng.CurrentState()).To(Equal(sm.ACTIVE))
		})
	})

	When("an event outside the machine is submitted", func() {
		It("should be rejected", func() {
			_, err := eng.Submit(request(sm.Event("SELF_DESTRUCT"), true))
			Expect(err).To(MatchError(ErrTransitionRejected))
			Expect(eng.CurrentState()).To(Equal(sm.ACTIVE))
		})
	})

	When("transitions are chained", func() {
		DescribeTable("task A completion needs no privilege",
			func(privileged bool) {
				_, err := eng.Submit(request(sm.INIT_MAINTENANCE, true))
				Expect(err).NotTo(HaveOccurred())
				out, err := eng.Submit(request(sm.TASK_A_COMPLETED, privileged))
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(BeNil())
				Expect(eng.CurrentState()).To(Equal(sm.WAITING_FOR_TASK_A_COMPLETED))
			},
			Entry("privileged", true),
			Entry("unprivileged", false),
		)

		It("should record the accepted transitions in order", func() {
			_, _ = eng.Submit(request(sm.INIT_MAINTENANCE, false))
			_, _ = eng.Submit(request(sm.INIT_MAINTENANCE, true))
			_, _ = eng.Submit(request(sm.INIT_MAINTENANCE, true))
			_, _ = eng.Submit(request(sm.TASK_A_COMPLETED, false))

			history := eng.History()
			Expect(history).To(HaveLen(2))
			Expect(history[0].Evt).To(Equal(sm.INIT_MAINTENANCE))
			Expect(history[0].Src).To(Equal(sm.ACTIVE))
			Expect(history[0].Dst).To(Equal(sm.CREATE_TASK_A))
			Expect(history[0].Privileged).To(BeTrue())
			Expect(history[1].Evt).To(Equal(sm.TASK_A_COMPLETED))
			Expect(history[1].Src).To(Equal(sm.CREATE_TASK_A))
			Expect(history[1].Dst).To(Equal(sm.WAITING_FOR_TASK_A_COMPLETED))
			Expect(history[1].Privileged).To(BeFalse())
			Expect(history[1].Timestamp).NotTo(BeTemporally("<", history[0].Timestamp))
		})
	})

	When("the engine is in CREATE_TASK_A", func() {
		BeforeEach(func() {
			_, err := eng.Submit(request(sm.INIT_MAINTENANCE, true))
			Expect(err).NotTo(HaveOccurred())
		})
		It("should only offer TASK_A_COMPLETED", func() {
			Expect(eng.AvailableEvents()).To(Equal([]sm.Event{sm.TASK_A_COMPLETED}))
		})
		It("should reject a second INIT_MAINTENANCE", func() {
			_, err := eng.Submit(request(sm.INIT_MAINTENANCE, true))
			Expect(err).To(MatchError(ErrTransitionRejected))
			Expect(eng.CurrentState()).To(Equal(sm.CREATE_TASK_A))
		})
	})

	When("the engine is in WAITING_FOR_TASK_A_COMPLETED", func() {
		BeforeEach(func() {
			_, err := eng.Submit(request(sm.INIT_MAINTENANCE, true))
			Expect(err).NotTo(HaveOccurred())
			_, err = eng.Submit(request(sm.TASK_A_COMPLETED, true))
			Expect(err).NotTo(HaveOccurred())
		})
		It("should offer no events", func() {
			Expect(eng.AvailableEvents()).To(BeEmpty())
		})
		DescribeTable("every request is rejected",
			func(evt sm.Event, privileged bool) {
				_, err := eng.Submit(request(evt, privileged))
				Expect(err).To(MatchError(ErrTransitionRejected))
				Expect(eng.CurrentState()).To(Equal(sm.WAITING_FOR_TASK_A_COMPLETED))
			},
			Entry("INIT_MAINTENANCE, privileged", sm.INIT_MAINTENANCE, true),
			Entry("INIT_MAINTENANCE, unprivileged", sm.INIT_MAINTENANCE, false),
			Entry("TASK_A_COMPLETED, privileged", sm.TASK_A_COMPLETED, true),
			Entry("TASK_A_COMPLETED, unprivileged", sm.TASK_A_COMPLETED, false),
		)
	})

	When("a request is rejected repeatedly", func() {
		It("should never change state and always fail the same way", func() {
			for i := 0; i < 10; i++ {
				_, err := eng.Submit(request(sm.INIT_MAINTENANCE, false))
				Expect(err).To(MatchError(ErrTransitionRejected))
				Expect(eng.CurrentState()).To(Equal(sm.ACTIVE))
			}
			Expect(eng.History()).To(BeEmpty())
		})
	})

	When("many goroutines initiate maintenance at once", func() {
		It("should accept exactly one of them", func() {
			const callers = 64
			var (
				wg       sync.WaitGroup
				accepted int32
				rejected int32
			)
			wg.Add(callers)
			for i := 0; i < callers; i++ {
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					_, err := eng.Submit(request(sm.INIT_MAINTENANCE, true))
					if err == nil {
						atomic.AddInt32(&accepted, 1)
						return
					}
					Expect(err).To(MatchError(ErrTransitionRejected))
					atomic.AddInt32(&rejected, 1)
				}()
			}
			wg.Wait()
			Expect(accepted).To(BeEquivalentTo(1))
			Expect(rejected).To(BeEquivalentTo(callers - 1))
			Expect(eng.CurrentState()).To(Equal(sm.CREATE_TASK_A))
			Expect(eng.History()).To(HaveLen(1))
		})
	})

	It("renders a Graphviz graph of the table", func() {
		graph := eng.Graph()
		Expect(graph).To(ContainSubstring("digraph"))
		Expect(graph).To(ContainSubstring("ACTIVE"))
		Expect(graph).To(ContainSubstring("CREATE_TASK_A"))
		Expect(graph).To(ContainSubstring("INIT_MAINTENANCE"))
		Expect(graph).To(ContainSubstring("TASK_A_COMPLETED"))
	})
})

var _ = Describe("engine metrics", func() {
	var (
		c   *metrics.Collectors
		eng *Engine
	)
	BeforeEach(func() {
		c = metrics.NewCollectors()
		Expect(c.Register(prometheus.NewRegistry())).To(Succeed())
		var err error
		eng, err = NewWithRules(DefaultRules(), c)
		Expect(err).NotTo(HaveOccurred())
	})

	It("counts one observation per call", func() {
		_, _ = eng.Submit(request(sm.INIT_MAINTENANCE, false))
		_, _ = eng.Submit(request(sm.TASK_A_COMPLETED, true))
		_, _ = eng.Submit(request(sm.INIT_MAINTENANCE, true))

		Expect(testutil.ToFloat64(c.Rejected.WithLabelValues("ACTIVE", "INIT_MAINTENANCE"))).To(Equal(1.0))
		Expect(testutil.ToFloat64(c.Rejected.WithLabelValues("ACTIVE", "TASK_A_COMPLETED"))).To(Equal(1.0))
		Expect(testutil.ToFloat64(c.Accepted.WithLabelValues("ACTIVE", "INIT_MAINTENANCE"))).To(Equal(1.0))
	})

	It("works without collectors", func() {
		quiet, err := NewWithRules(DefaultRules(), nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = quiet.Submit(request(sm.INIT_MAINTENANCE, true))
		Expect(err).NotTo(HaveOccurred())
		_, err = quiet.Submit(request(sm.INIT_MAINTENANCE, true))
		Expect(err).To(MatchError(ErrTransitionRejected))
	})
})
