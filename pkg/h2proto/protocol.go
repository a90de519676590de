package h2proto

import (
	"io"

	"github.com/WuKongIM/h2proto/pkg/wklog"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Protocol Protocol
type Protocol interface {
	// DecodeFrame 从data解码一帧，返回frame和消费的字节数。
	// data不足一帧时返回(nil, 0, nil)
	DecodeFrame(data []byte, ctx CompressionContext) (Frame, int, error)
	// EncodeFrame 编码一帧，长度字段始终按载荷内容重新计算
	EncodeFrame(frame Frame, ctx CompressionContext) ([]byte, error)
}

// Proto HTTP/2帧编解码器，RFC 7540 section 4到6。
// 本身无状态也不加锁，但传入的压缩上下文是连接级的有状态对象，
// 同一连接上涉及HEADERS的调用必须按线上顺序串行(见CompressionContext)
type Proto struct {
	wklog.Log
	// Stats 收发统计，由嵌入本编解码器的连接层采集导出
	Stats *ProtoStats
}

// New 创建HTTP/2帧编解码器
func New() *Proto {
	return &Proto{
		Log:   wklog.NewWKLog("H2Proto"),
		Stats: NewProtoStats(),
	}
}

// payloadDecodeFunc 载荷解码函数
type payloadDecodeFunc func(framer Framer, payload []byte, ctx CompressionContext) (Frame, error)

var payloadDecodeMap = map[FrameType]payloadDecodeFunc{
	FrameData:         decodeData,
	FrameHeaders:      decodeHeaders,
	FramePriority:     decodePriority,
	FrameRstStream:    decodeRstStream,
	FrameSettings:     decodeSettings,
	FramePushPromise:  decodePushPromise,
	FramePing:         decodePing,
	FrameGoaway:       decodeGoaway,
	FrameWindowUpdate: decodeWindowUpdate,
	FrameContinuation: decodeContinuation,
}

// RecvFrame 从conn读取一帧。
// 先读9字节固定报头，再精确读取声明长度的载荷，短读是传输错误原样上抛。
// 未知帧类型不是错误：载荷照常消费掉，返回*UnknownFrame哨兵，
// 调用方可以继续读下一帧而不会丢流同步
func (p *Proto) RecvFrame(conn io.Reader, ctx CompressionContext) (Frame, error) {
	head := make([]byte, FrameHeaderLen)
	if _, err := io.ReadFull(conn, head); err != nil {
		return nil, err
	}
	framer := framerFromBytes(head)

	payload := make([]byte, framer.PayloadLen)
	if _, err := io.ReadFull(conn, payload); err != nil {
		return nil, err
	}
	p.Stats.InFrames.Inc()
	p.Stats.InBytes.Add(int64(FrameHeaderLen + len(payload)))

	return p.decodePayload(framer, payload, ctx)
}

// SendFrame 编码并把报头+载荷作为一次逻辑写入发到conn
func (p *Proto) SendFrame(conn io.Writer, frame Frame, ctx CompressionContext) error {
	data, err := p.EncodeFrame(frame, ctx)
	if err != nil {
		return err
	}
	if _, err := conn.Write(data); err != nil {
		return err
	}
	p.Stats.OutFrames.Inc()
	p.Stats.OutBytes.Add(int64(len(data)))
	return nil
}

// DecodeFrame 从data解码一帧，返回frame和消费的字节数
func (p *Proto) DecodeFrame(data []byte, ctx CompressionContext) (Frame, int, error) {
	if len(data) < FrameHeaderLen {
		return nil, 0, nil
	}
	framer := framerFromBytes(data)
	frameLen := FrameHeaderLen + int(framer.PayloadLen)
	if len(data) < frameLen {
		return nil, 0, nil
	}
	frame, err := p.decodePayload(framer, data[FrameHeaderLen:frameLen], ctx)
	if err != nil {
		return nil, 0, err
	}
	return frame, frameLen, nil
}

func (p *Proto) decodePayload(framer Framer, payload []byte, ctx CompressionContext) (Frame, error) {
	decodeFunc := payloadDecodeMap[framer.FrameType]
	if decodeFunc == nil {
		p.Debug("ignore unknown frame type", zap.Uint8("frameType", uint8(framer.FrameType)), zap.Uint32("streamId", framer.StreamId), zap.Uint32("payloadLen", framer.PayloadLen))
		return &UnknownFrame{Framer: framer, Payload: payload}, nil
	}
	frame, err := decodeFunc(framer, payload, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "decode [%s] frame failed", framer.FrameType)
	}
	if settingsFrame, ok := frame.(*SettingsFrame); ok && settingsFrame.AckPayloadViolation {
		p.Warn("settings ack frame carried a non-empty payload", zap.Uint32("payloadLen", framer.PayloadLen))
	}
	return frame, nil
}

// EncodeFrame 编码一帧。
// 载荷长度由帧字段状态完全决定，报头里的长度永远是重新算出来的，
// 报头流ID字段的保留位发送时始终为0
func (p *Proto) EncodeFrame(frame Frame, ctx CompressionContext) ([]byte, error) {
	enc := NewEncoder()

	var err error
	switch packet := frame.(type) {
	case *DataFrame:
		p.encodeFramer(packet, uint32(encodeDataSize(packet)), enc)
		err = encodeData(packet, enc)
	case *HeadersFrame:
		if err = packet.ensureFragment(ctx); err != nil {
			return nil, err
		}
		p.encodeFramer(packet, uint32(encodeHeadersSize(packet)), enc)
		err = encodeHeaders(packet, enc)
	case *PriorityFrame:
		p.encodeFramer(packet, uint32(encodePrioritySize(packet)), enc)
		err = encodePriority(packet, enc)
	case *RstStreamFrame:
		p.encodeFramer(packet, uint32(encodeRstStreamSize(packet)), enc)
		err = encodeRstStream(packet, enc)
	case *SettingsFrame:
		p.encodeFramer(packet, uint32(encodeSettingsSize(packet)), enc)
		err = encodeSettings(packet, enc)
	case *PushPromiseFrame:
		p.encodeFramer(packet, uint32(encodePushPromiseSize(packet)), enc)
		err = encodePushPromise(packet, enc)
	case *PingFrame:
		p.encodeFramer(packet, uint32(encodePingSize(packet)), enc)
		err = encodePing(packet, enc)
	case *GoawayFrame:
		p.encodeFramer(packet, uint32(encodeGoawaySize(packet)), enc)
		err = encodeGoaway(packet, enc)
	case *WindowUpdateFrame:
		p.encodeFramer(packet, uint32(encodeWindowUpdateSize(packet)), enc)
		err = encodeWindowUpdate(packet, enc)
	case *ContinuationFrame:
		p.encodeFramer(packet, uint32(encodeContinuationSize(packet)), enc)
		err = encodeContinuation(packet, enc)
	case *UnknownFrame:
		return nil, errors.Wrap(ErrInvalidFrame, "unknown frame cannot be encoded")
	default:
		return nil, errors.Wrapf(ErrInvalidFrame, "unsupported frame type %T", frame)
	}
	if err != nil {
		return nil, err
	}
	if enc.Len()-FrameHeaderLen > MaxPayloadLen {
		return nil, errors.Wrapf(ErrInvalidFrame, "frame payload %d exceeds max %d", enc.Len()-FrameHeaderLen, MaxPayloadLen)
	}
	return enc.Bytes(), nil
}

func (p *Proto) encodeFramer(f Frame, payloadLen uint32, enc *Encoder) {
	enc.WriteUint24(payloadLen)
	enc.WriteUint8(uint8(f.GetFrameType()))
	enc.WriteUint8(f.GetFlags())
	enc.WriteUint31(f.GetStreamId())
}
