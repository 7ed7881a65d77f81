package mqtt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l1"
	"github.com/robotalks/pendulum.go/pkg/l1/comm"
)

// MetaTopic is the retained topic carrying ControllerMeta of a controller.
func MetaTopic(ref l1.ControllerRef) string {
	return ref.Name() + "/meta"
}

// Registrar implements l1.Registrar using MQTT.
type Registrar struct {
	Queue *Queue
	Info  l1.ControllerInfo

	metaJSON  string
	registrar comm.Registrar
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info l1.ControllerInfo) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		panic(err)
	}
	conf, err := ParseBrokerURL(brokerURL)
	if err != nil {
		return nil, err
	}
	// the broker clears the meta when the controller dies, so it drops
	// out of discovery.
	conf.Options.SetBinaryWill(conf.TopicPrefix+MetaTopic(info.Ref), nil, 1, true)
	if conf.Options.ClientID == "" {
		conf.Options.SetClientID("pendulum:" + info.Ref.Name())
	}
	r := &Registrar{
		Queue:    NewQueue(conf),
		Info:     info,
		metaJSON: string(meta),
	}
	r.Queue.OnConnect = func(*Queue) { r.onConnected() }
	r.registrar.Init(NewPacketReadWriter(r.Queue).ForController(info.Ref))
	return r, nil
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.registrar.SendEvent(ctx, msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.Add(&r.registrar)
	loop.AddRunnable(r)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	r.Queue.Connect()
	<-ctx.Done()
	r.Queue.PubWith(MetaTopic(r.Info.Ref), nil, 1, true).WaitTimeout(time.Second)
	r.Queue.Close()
	return nil
}

func (r *Registrar) onConnected() {
	glog.Infof("registered %s", r.Info.Ref.Name())
	r.Queue.PubWith(MetaTopic(r.Info.Ref), []byte(r.metaJSON), 1, true)
}
