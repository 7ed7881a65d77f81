package cart

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/pendulum.go/pkg/cli/sh"
	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l1/msgs"
)

// ParseSpeed parses the percent argument of a move command.
// sign is applied to the parsed value: 1 for move/right, -1 for left.
func ParseSpeed(args []string, sign float64) (*msgs.CartMove, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("SPEED required")
	}
	val, err := strconv.ParseFloat(args[0], 64)
	if err != nil || math.IsNaN(val) {
		return nil, fmt.Errorf("Invalid SPEED: %q", args[0])
	}
	if sign < 0 && val < 0 {
		return nil, fmt.Errorf("SPEED must not be negative")
	}
	return &msgs.CartMove{Cmd: sign * val}, nil
}

func moveCmd(sign float64) func(c *ishell.Context) {
	return sh.MustBeConnected(func(c *ishell.Context) {
		msg, err := ParseSpeed(c.Args, sign)
		if err != nil {
			c.Err(err)
			return
		}
		sh.DoCommand(c, msg)
	})
}

var (
	// CartMoveCmd exposes CartMove command.
	CartMoveCmd = ishell.Cmd{
		Name:    "cart.move",
		Aliases: []string{"cm"},
		Help:    "SPEED(percent, negative moves left)",
		Func:    moveCmd(1),
	}

	// CartRightCmd moves the cart right.
	CartRightCmd = ishell.Cmd{
		Name:    "cart.right",
		Aliases: []string{"cr"},
		Help:    "SPEED(percent)",
		Func:    moveCmd(1),
	}

	// CartLeftCmd moves the cart left.
	CartLeftCmd = ishell.Cmd{
		Name:    "cart.left",
		Aliases: []string{"cl"},
		Help:    "SPEED(percent)",
		Func:    moveCmd(-1),
	}

	// CartStopCmd exposes CartStop command.
	CartStopCmd = ishell.Cmd{
		Name:    "cart.stop",
		Aliases: []string{"cs"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.CartStop{})
		}),
	}

	// CartEnableCmd exposes CartEnable command.
	CartEnableCmd = ishell.Cmd{
		Name:    "cart.enable",
		Aliases: []string{"ce"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.CartEnable{})
		}),
	}

	// MotorInfoCmd exposes MotorInfoQuery command.
	MotorInfoCmd = ishell.Cmd{
		Name:    "cart.info",
		Aliases: []string{"ci"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.MotorInfoQuery{})
		}),
	}
)

// setFlags lists the names of true bool fields of a flag struct.
func setFlags(flags interface{}) string {
	v := reflect.Indirect(reflect.ValueOf(flags))
	var names []string
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.Bool && f.Bool() {
			names = append(names, v.Type().Field(i).Name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// FormatMotorInfo renders a MotorInfoReply.
func FormatMotorInfo(msg fx.Message) string {
	info := msg.(*msgs.MotorInfoReply).Info
	if info == nil {
		return "no telemetry yet"
	}
	var w bytes.Buffer
	fmt.Fprintf(&w, "time:         %s\n", time.Unix(0, info.Timestamp).Format(time.StampMilli))
	fmt.Fprintf(&w, "enabled:      %v\n", info.Enabled)
	fmt.Fprintf(&w, "target speed: %d\n", info.TargetSpeed)
	fmt.Fprintf(&w, "speed:        %d\n", info.Speed)
	fmt.Fprintf(&w, "brake:        %d\n", info.BrakeAmt)
	fmt.Fprintf(&w, "vin:          %.3fV\n", info.Vin)
	fmt.Fprintf(&w, "temperature:  %.1fC\n", info.Temp)
	if info.ErrorStatus != nil {
		fmt.Fprintf(&w, "errors:       %s\n", setFlags(info.ErrorStatus))
	}
	if info.SerialError != nil {
		fmt.Fprintf(&w, "serial:       %s\n", setFlags(info.SerialError))
	}
	if info.LimitStatus != nil {
		fmt.Fprintf(&w, "limits:       %s\n", setFlags(info.LimitStatus))
	}
	if wd := info.Watchdog; wd != nil {
		fmt.Fprintf(&w, "watchdog:     expired=%v", wd.Expired)
		if wd.LastCommandAt != 0 {
			fmt.Fprintf(&w, " last-command=%s", time.Unix(0, wd.LastCommandAt).Format(time.StampMilli))
		}
		w.WriteString("\n")
	}
	if enc := info.Encoder; enc != nil {
		fmt.Fprintf(&w, "encoder:      arm=%d motor=%d\n", enc.Arm, enc.Motor)
	}
	return w.String()
}

func init() {
	sh.AddFormatter(&msgs.MotorInfoReply{}, FormatMotorInfo)
	sh.AddCmds(
		&CartMoveCmd,
		&CartRightCmd,
		&CartLeftCmd,
		&CartStopCmd,
		&CartEnableCmd,
		&MotorInfoCmd,
	)
}
