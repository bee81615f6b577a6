package wire

import "google.golang.org/protobuf/encoding/protowire"

// WiFiScanPayload field numbers.
const (
	fieldScanMsg        protowire.Number = 1
	fieldScanStatus     protowire.Number = 2
	fieldScanCmdStart   protowire.Number = 10
	fieldScanRespStart  protowire.Number = 11
	fieldScanCmdStatus  protowire.Number = 12
	fieldScanRespStatus protowire.Number = 13
	fieldScanCmdResult  protowire.Number = 14
	fieldScanRespResult protowire.Number = 15

	fieldStartBlocking      protowire.Number = 1
	fieldStartPassive       protowire.Number = 2
	fieldStartGroupChannels protowire.Number = 3
	fieldStartPeriodMs      protowire.Number = 4

	fieldStatusFinished protowire.Number = 1
	fieldStatusCount    protowire.Number = 2

	fieldResultStartIndex protowire.Number = 1
	fieldResultCount      protowire.Number = 2

	fieldResultEntries protowire.Number = 1

	fieldEntrySSID    protowire.Number = 1
	fieldEntryChannel protowire.Number = 2
	fieldEntryRSSI    protowire.Number = 3
	fieldEntryBSSID   protowire.Number = 4
	fieldEntryAuth    protowire.Number = 5
)

// ScanPayload is the message exchanged on prov-scan.
// Exactly one of the command or response fields is set, matching Msg.
type ScanPayload struct {
	Msg    ScanMsgType
	Status Status

	StartCmd   *ScanParams
	StartResp  bool
	StatusCmd  bool
	StatusResp *ScanStatus
	ResultCmd  *ScanResultCmd
	ResultResp []WiFiAP
}

// ScanResultCmd requests a page of scan results.
type ScanResultCmd struct {
	StartIndex uint32
	Count      uint32
}

// EncodeScanPayload encodes a scan message.
func EncodeScanPayload(p *ScanPayload) []byte {
	var e encoder
	e.varint(fieldScanMsg, uint64(p.Msg))
	e.varint(fieldScanStatus, uint64(p.Status))

	switch p.Msg {
	case ScanCmdStart:
		params := DefaultScanParams()
		if p.StartCmd != nil {
			params = *p.StartCmd
		}
		var s encoder
		s.bool(fieldStartBlocking, params.Blocking)
		s.bool(fieldStartPassive, params.Passive)
		s.varint(fieldStartGroupChannels, uint64(params.GroupChannels))
		s.varint(fieldStartPeriodMs, uint64(params.PeriodMs))
		e.message(fieldScanCmdStart, s.b)
	case ScanRespStart:
		e.message(fieldScanRespStart, nil)
	case ScanCmdStatus:
		e.message(fieldScanCmdStatus, nil)
	case ScanRespStatus:
		var s encoder
		if p.StatusResp != nil {
			s.bool(fieldStatusFinished, p.StatusResp.Finished)
			s.varint(fieldStatusCount, uint64(p.StatusResp.Count))
		}
		e.message(fieldScanRespStatus, s.b)
	case ScanCmdResult:
		var s encoder
		if p.ResultCmd != nil {
			s.varint(fieldResultStartIndex, uint64(p.ResultCmd.StartIndex))
			s.varint(fieldResultCount, uint64(p.ResultCmd.Count))
		}
		e.message(fieldScanCmdResult, s.b)
	case ScanRespResult:
		var s encoder
		for _, ap := range p.ResultResp {
			s.message(fieldResultEntries, encodeScanEntry(ap))
		}
		e.message(fieldScanRespResult, s.b)
	}
	return e.b
}

func encodeScanEntry(ap WiFiAP) []byte {
	var e encoder
	e.string(fieldEntrySSID, ap.SSID)
	e.varint(fieldEntryChannel, uint64(ap.Channel))
	e.int32(fieldEntryRSSI, ap.RSSI)
	bssid, err := parseBSSID(ap.BSSID)
	if err == nil {
		e.bytes(fieldEntryBSSID, bssid)
	}
	e.varint(fieldEntryAuth, uint64(ap.Auth))
	return e.b
}

// DecodeScanPayload decodes a scan message.
func DecodeScanPayload(data []byte) (*ScanPayload, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}

	p := &ScanPayload{}
	for _, f := range fields {
		switch f.num {
		case fieldScanMsg:
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			p.Msg = ScanMsgType(v)
		case fieldScanStatus:
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			p.Status = Status(v)
		case fieldScanCmdStart:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			params, err := decodeScanStart(f.bytes)
			if err != nil {
				return nil, err
			}
			p.StartCmd = params
		case fieldScanRespStart:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			p.StartResp = true
		case fieldScanCmdStatus:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			p.StatusCmd = true
		case fieldScanRespStatus:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			st, err := decodeScanStatus(f.bytes)
			if err != nil {
				return nil, err
			}
			p.StatusResp = st
		case fieldScanCmdResult:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			cmd, err := decodeScanResultCmd(f.bytes)
			if err != nil {
				return nil, err
			}
			p.ResultCmd = cmd
		case fieldScanRespResult:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			entries, err := decodeScanResult(f.bytes)
			if err != nil {
				return nil, err
			}
			p.ResultResp = entries
		}
	}
	return p, nil
}

func decodeScanStart(data []byte) (*ScanParams, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	params := &ScanParams{}
	for _, f := range fields {
		if f.typ != protowire.VarintType {
			continue
		}
		switch f.num {
		case fieldStartBlocking:
			params.Blocking = protowire.DecodeBool(f.varint)
		case fieldStartPassive:
			params.Passive = protowire.DecodeBool(f.varint)
		case fieldStartGroupChannels:
			params.GroupChannels = uint32(f.varint)
		case fieldStartPeriodMs:
			params.PeriodMs = uint32(f.varint)
		}
	}
	return params, nil
}

func decodeScanStatus(data []byte) (*ScanStatus, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	st := &ScanStatus{}
	for _, f := range fields {
		if f.typ != protowire.VarintType {
			continue
		}
		switch f.num {
		case fieldStatusFinished:
			st.Finished = protowire.DecodeBool(f.varint)
		case fieldStatusCount:
			st.Count = uint32(f.varint)
		}
	}
	return st, nil
}

func decodeScanResultCmd(data []byte) (*ScanResultCmd, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	cmd := &ScanResultCmd{}
	for _, f := range fields {
		if f.typ != protowire.VarintType {
			continue
		}
		switch f.num {
		case fieldResultStartIndex:
			cmd.StartIndex = uint32(f.varint)
		case fieldResultCount:
			cmd.Count = uint32(f.varint)
		}
	}
	return cmd, nil
}

func decodeScanResult(data []byte) ([]WiFiAP, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	var entries []WiFiAP
	for _, f := range fields {
		if f.num != fieldResultEntries {
			continue
		}
		if err := wantBytes(f); err != nil {
			return nil, err
		}
		ap, err := decodeScanEntry(f.bytes)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ap)
	}
	return entries, nil
}

func decodeScanEntry(data []byte) (WiFiAP, error) {
	fields, err := parseFields(data)
	if err != nil {
		return WiFiAP{}, err
	}
	var ap WiFiAP
	for _, f := range fields {
		switch f.num {
		case fieldEntrySSID:
			if err := wantBytes(f); err != nil {
				return WiFiAP{}, err
			}
			ap.SSID = string(f.bytes)
		case fieldEntryChannel:
			if err := wantVarint(f); err != nil {
				return WiFiAP{}, err
			}
			ap.Channel = uint32(f.varint)
		case fieldEntryRSSI:
			if err := wantVarint(f); err != nil {
				return WiFiAP{}, err
			}
			ap.RSSI = int32(f.varint)
		case fieldEntryBSSID:
			if err := wantBytes(f); err != nil {
				return WiFiAP{}, err
			}
			ap.BSSID = formatBSSID(f.bytes)
		case fieldEntryAuth:
			v, err := wantEnum(f)
			if err != nil {
				return WiFiAP{}, err
			}
			ap.Auth = AuthMode(v)
			if !ap.Auth.Valid() {
				return WiFiAP{}, invalidf("unknown auth mode %d", f.varint)
			}
		}
	}
	return ap, nil
}

// EncodeScanStart encodes a scan start command.
func EncodeScanStart(params ScanParams) []byte {
	return EncodeScanPayload(&ScanPayload{Msg: ScanCmdStart, StartCmd: &params})
}

// DecodeScanStartResponse checks a scan start response.
func DecodeScanStartResponse(data []byte) error {
	p, err := decodeScanResponse(data, ScanRespStart)
	if err != nil {
		return err
	}
	return checkStatus("scan start", p.Status)
}

// EncodeScanStatus encodes a scan status command.
func EncodeScanStatus() []byte {
	return EncodeScanPayload(&ScanPayload{Msg: ScanCmdStatus})
}

// DecodeScanStatusResponse decodes a scan status response.
func DecodeScanStatusResponse(data []byte) (ScanStatus, error) {
	p, err := decodeScanResponse(data, ScanRespStatus)
	if err != nil {
		return ScanStatus{}, err
	}
	if err := checkStatus("scan status", p.Status); err != nil {
		return ScanStatus{}, err
	}
	if p.StatusResp == nil {
		return ScanStatus{}, invalidf("scan status response has no payload")
	}
	return *p.StatusResp, nil
}

// EncodeScanResult encodes a request for count results starting at index.
func EncodeScanResult(index, count uint32) []byte {
	return EncodeScanPayload(&ScanPayload{
		Msg:       ScanCmdResult,
		ResultCmd: &ScanResultCmd{StartIndex: index, Count: count},
	})
}

// DecodeScanResultResponse decodes a page of scan results.
func DecodeScanResultResponse(data []byte) ([]WiFiAP, error) {
	p, err := decodeScanResponse(data, ScanRespResult)
	if err != nil {
		return nil, err
	}
	if err := checkStatus("scan result", p.Status); err != nil {
		return nil, err
	}
	return p.ResultResp, nil
}

func decodeScanResponse(data []byte, want ScanMsgType) (*ScanPayload, error) {
	p, err := DecodeScanPayload(data)
	if err != nil {
		return nil, err
	}
	if p.Msg != want {
		return nil, invalidf("expected %s, got %s", want, p.Msg)
	}
	return p, nil
}
