package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Engine.IO v4 frame types.
const (
	engineOpen    = '0'
	engineClose   = '1'
	enginePing    = '2'
	enginePong    = '3'
	engineMessage = '4'
	engineNoop    = '6'
)

type PacketType byte

// socket.io v5 packet types, carried inside Engine.IO message frames.
const (
	PacketConnect      PacketType = '0'
	PacketDisconnect   PacketType = '1'
	PacketEvent        PacketType = '2'
	PacketAck          PacketType = '3'
	PacketConnectError PacketType = '4'
	PacketBinaryEvent  PacketType = '5'
	PacketBinaryAck    PacketType = '6'
)

var ErrMalformedPacket = errors.New("malformed socket.io packet")

type Packet struct {
	Type      PacketType
	Namespace string
	AckID     int
	HasAck    bool
	Data      json.RawMessage
}

type handshake struct {
	SID          string   `json:"sid"`
	Upgrades     []string `json:"upgrades"`
	PingInterval int      `json:"pingInterval"`
	PingTimeout  int      `json:"pingTimeout"`
	MaxPayload   int      `json:"maxPayload"`
}

func EventPacket(ackID int, hasAck bool, event string, args ...any) (Packet, error) {
	payload := make([]any, 0, len(args)+1)
	payload = append(payload, event)
	payload = append(payload, args...)

	data, err := json.Marshal(payload)
	if err != nil {
		return Packet{}, fmt.Errorf("encode %s: %w", event, err)
	}
	return Packet{Type: PacketEvent, AckID: ackID, HasAck: hasAck, Data: data}, nil
}

// Encode renders p as an Engine.IO message frame.
func (p Packet) Encode() string {
	var b strings.Builder
	b.WriteByte(engineMessage)
	b.WriteByte(byte(p.Type))
	if p.Namespace != "" && p.Namespace != "/" {
		b.WriteString(p.Namespace)
		b.WriteByte(',')
	}
	if p.HasAck {
		b.WriteString(strconv.Itoa(p.AckID))
	}
	b.Write(p.Data)
	return b.String()
}

// Event splits an event packet into its name and arguments.
func (p Packet) Event() (string, []json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(p.Data, &parts); err != nil || len(parts) == 0 {
		return "", nil, fmt.Errorf("%w: event payload %q", ErrMalformedPacket, p.Data)
	}
	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return "", nil, fmt.Errorf("%w: event name %s", ErrMalformedPacket, parts[0])
	}
	return name, parts[1:], nil
}

// DecodePacket parses the socket.io part of an Engine.IO message frame,
// that is the frame without its leading '4'.
func DecodePacket(s string) (Packet, error) {
	if s == "" {
		return Packet{}, fmt.Errorf("%w: empty", ErrMalformedPacket)
	}
	p := Packet{Type: PacketType(s[0])}
	if p.Type < PacketConnect || p.Type > PacketBinaryAck {
		return Packet{}, fmt.Errorf("%w: type %q", ErrMalformedPacket, s[0])
	}
	rest := s[1:]

	if p.Type == PacketBinaryEvent || p.Type == PacketBinaryAck {
		i := strings.IndexByte(rest, '-')
		if i < 0 {
			return Packet{}, fmt.Errorf("%w: attachment count", ErrMalformedPacket)
		}
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "/") {
		i := strings.IndexByte(rest, ',')
		if i < 0 {
			p.Namespace, rest = rest, ""
		} else {
			p.Namespace, rest = rest[:i], rest[i+1:]
		}
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		id, err := strconv.Atoi(rest[:digits])
		if err != nil {
			return Packet{}, fmt.Errorf("%w: ack id: %v", ErrMalformedPacket, err)
		}
		p.AckID, p.HasAck = id, true
		rest = rest[digits:]
	}

	if rest != "" {
		if !json.Valid([]byte(rest)) {
			return Packet{}, fmt.Errorf("%w: payload is not json", ErrMalformedPacket)
		}
		p.Data = json.RawMessage(rest)
	}
	return p, nil
}
