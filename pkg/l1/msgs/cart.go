package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/pendulum.go/pkg/framework"
)

// CartMove commands the cart with a signed speed percent,
// positive is right and negative is left.
type CartMove struct {
	Cmd float64 `protobuf:"fixed64,1,opt,name=cmd,proto3" json:"cmd,omitempty"`
}

// NewMessage implements Message.
func (m *CartMove) NewMessage() fx.Message { return &CartMove{} }

// TypeID implements SerializableMessage.
func (m *CartMove) TypeID() uint32 { return CartMoveTypeID }

// Serializable implements SerializableMessage.
func (m *CartMove) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CartMove) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CartMove) Reset() { *m = CartMove{} }

// String implements proto.Message.
func (m *CartMove) String() string { return proto.CompactTextString(m) }

// CartStop brakes the cart.
type CartStop struct {
}

// NewMessage implements Message.
func (m *CartStop) NewMessage() fx.Message { return &CartStop{} }

// TypeID implements SerializableMessage.
func (m *CartStop) TypeID() uint32 { return CartStopTypeID }

// Serializable implements SerializableMessage.
func (m *CartStop) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CartStop) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CartStop) Reset() { *m = CartStop{} }

// String implements proto.Message.
func (m *CartStop) String() string { return proto.CompactTextString(m) }

// CartEnable clears safe-start of the motor controller.
type CartEnable struct {
}

// NewMessage implements Message.
func (m *CartEnable) NewMessage() fx.Message { return &CartEnable{} }

// TypeID implements SerializableMessage.
func (m *CartEnable) TypeID() uint32 { return CartEnableTypeID }

// Serializable implements SerializableMessage.
func (m *CartEnable) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CartEnable) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CartEnable) Reset() { *m = CartEnable{} }

// String implements proto.Message.
func (m *CartEnable) String() string { return proto.CompactTextString(m) }

// MotorInfoQuery queries the latest MotorInfo.
type MotorInfoQuery struct {
}

// NewMessage implements Message.
func (m *MotorInfoQuery) NewMessage() fx.Message { return &MotorInfoQuery{} }

// TypeID implements SerializableMessage.
func (m *MotorInfoQuery) TypeID() uint32 { return MotorInfoQueryTypeID }

// Serializable implements SerializableMessage.
func (m *MotorInfoQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorInfoQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorInfoQuery) Reset() { *m = MotorInfoQuery{} }

// String implements proto.Message.
func (m *MotorInfoQuery) String() string { return proto.CompactTextString(m) }

// MotorInfoReply is the response for MotorInfoQuery.
type MotorInfoReply struct {
	Info *MotorInfo `protobuf:"bytes,1,opt,name=info,proto3" json:"info,omitempty"`
}

// NewMessage implements Message.
func (m *MotorInfoReply) NewMessage() fx.Message { return &MotorInfoReply{} }

// TypeID implements SerializableMessage.
func (m *MotorInfoReply) TypeID() uint32 { return MotorInfoReplyTypeID }

// Serializable implements SerializableMessage.
func (m *MotorInfoReply) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorInfoReply) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorInfoReply) Reset() { *m = MotorInfoReply{} }

// String implements proto.Message.
func (m *MotorInfoReply) String() string { return proto.CompactTextString(m) }

// MotorInfo is an Event message with the polled motor telemetry.
type MotorInfo struct {
	ErrorStatus *MotorError     `protobuf:"bytes,1,opt,name=error_status,proto3" json:"error_status,omitempty"`
	SerialError *SerialError    `protobuf:"bytes,2,opt,name=serial_error,proto3" json:"serial_error,omitempty"`
	LimitStatus *LimitStatus    `protobuf:"bytes,3,opt,name=limit_status,proto3" json:"limit_status,omitempty"`
	TargetSpeed int32           `protobuf:"zigzag32,4,opt,name=target_speed,proto3" json:"target_speed,omitempty"`
	Speed       int32           `protobuf:"zigzag32,5,opt,name=speed,proto3" json:"speed,omitempty"`
	BrakeAmt    uint32          `protobuf:"varint,6,opt,name=brake_amt,proto3" json:"brake_amt,omitempty"`
	Vin         float64         `protobuf:"fixed64,7,opt,name=vin,proto3" json:"vin,omitempty"`
	Temp        float64         `protobuf:"fixed64,8,opt,name=temp,proto3" json:"temp,omitempty"`
	Timestamp   int64           `protobuf:"varint,9,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Enabled     bool            `protobuf:"varint,10,opt,name=enabled,proto3" json:"enabled,omitempty"`
	Watchdog    *WatchdogStatus `protobuf:"bytes,11,opt,name=watchdog,proto3" json:"watchdog,omitempty"`
	Encoder     *EncoderCounts  `protobuf:"bytes,12,opt,name=encoder,proto3" json:"encoder,omitempty"`
}

// NewMessage implements Message.
func (m *MotorInfo) NewMessage() fx.Message { return &MotorInfo{} }

// TypeID implements SerializableMessage.
func (m *MotorInfo) TypeID() uint32 { return MotorInfoEventTypeID }

// Serializable implements SerializableMessage.
func (m *MotorInfo) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorInfo) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorInfo) Reset() { *m = MotorInfo{} }

// String implements proto.Message.
func (m *MotorInfo) String() string { return proto.CompactTextString(m) }

// MotorError is the decoded error status.
type MotorError struct {
	SafeStart     bool `protobuf:"varint,1,opt,name=safe_start,proto3" json:"safe_start,omitempty"`
	SerialError   bool `protobuf:"varint,2,opt,name=serial_error,proto3" json:"serial_error,omitempty"`
	CmdTimeout    bool `protobuf:"varint,3,opt,name=cmd_timeout,proto3" json:"cmd_timeout,omitempty"`
	LimitSwitch   bool `protobuf:"varint,4,opt,name=limit_switch,proto3" json:"limit_switch,omitempty"`
	LowVin        bool `protobuf:"varint,5,opt,name=low_vin,proto3" json:"low_vin,omitempty"`
	HighVin       bool `protobuf:"varint,6,opt,name=high_vin,proto3" json:"high_vin,omitempty"`
	OverTemp      bool `protobuf:"varint,7,opt,name=over_temp,proto3" json:"over_temp,omitempty"`
	DriverError   bool `protobuf:"varint,8,opt,name=driver_error,proto3" json:"driver_error,omitempty"`
	ErrorLineHigh bool `protobuf:"varint,9,opt,name=error_line_high,proto3" json:"error_line_high,omitempty"`
}

// SerialError is the decoded serial error status.
type SerialError struct {
	Framing   bool `protobuf:"varint,1,opt,name=framing,proto3" json:"framing,omitempty"`
	Noise     bool `protobuf:"varint,2,opt,name=noise,proto3" json:"noise,omitempty"`
	RxOverrun bool `protobuf:"varint,3,opt,name=rx_overrun,proto3" json:"rx_overrun,omitempty"`
	Format    bool `protobuf:"varint,4,opt,name=format,proto3" json:"format,omitempty"`
	Crc       bool `protobuf:"varint,5,opt,name=crc,proto3" json:"crc,omitempty"`
}

// LimitStatus is the decoded limit status.
type LimitStatus struct {
	ErrorOrSafeStart bool `protobuf:"varint,1,opt,name=error_or_safe_start,proto3" json:"error_or_safe_start,omitempty"`
	TempLimiter      bool `protobuf:"varint,2,opt,name=temp_limiter,proto3" json:"temp_limiter,omitempty"`
	HighTargetSpeed  bool `protobuf:"varint,3,opt,name=high_target_speed,proto3" json:"high_target_speed,omitempty"`
	LowTargetSpeed   bool `protobuf:"varint,4,opt,name=low_target_speed,proto3" json:"low_target_speed,omitempty"`
	An1Limit         bool `protobuf:"varint,5,opt,name=an1_limit,proto3" json:"an1_limit,omitempty"`
	An2Limit         bool `protobuf:"varint,6,opt,name=an2_limit,proto3" json:"an2_limit,omitempty"`
	UsbKill          bool `protobuf:"varint,7,opt,name=usb_kill,proto3" json:"usb_kill,omitempty"`
}

// WatchdogStatus reports the command watchdog.
type WatchdogStatus struct {
	Expired       bool  `protobuf:"varint,1,opt,name=expired,proto3" json:"expired,omitempty"`
	LastCommandAt int64 `protobuf:"varint,2,opt,name=last_command_at,proto3" json:"last_command_at,omitempty"`
}

// EncoderCounts is the latest sample of the encoder board.
type EncoderCounts struct {
	Arm        int32  `protobuf:"zigzag32,1,opt,name=arm,proto3" json:"arm,omitempty"`
	Motor      int32  `protobuf:"zigzag32,2,opt,name=motor,proto3" json:"motor,omitempty"`
	Quadrature uint32 `protobuf:"varint,3,opt,name=quadrature,proto3" json:"quadrature,omitempty"`
	Timestamp  int64  `protobuf:"varint,4,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

// TypeIDs
const (
	CartMoveTypeID       uint32 = GroupCart | 0x0000
	CartStopTypeID       uint32 = GroupCart | 0x0001
	CartEnableTypeID     uint32 = GroupCart | 0x0002
	MotorInfoQueryTypeID uint32 = GroupCart | 0x0003
	MotorInfoReplyTypeID uint32 = MotorInfoQueryTypeID | TypeIDMaskReply
	MotorInfoEventTypeID uint32 = GroupCart | TypeIDKindEvent | 0x0000
)
