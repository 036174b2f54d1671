package program

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"tokiwen/internal/isa"
)

// objectMagic identifies tokiwen object files.
const objectMagic = "TKWO"

// objectSchemaVersion - увеличивать при изменении формата objectFile
const objectSchemaVersion uint16 = 1

var ErrNotObject = errors.New("not a tokiwen object file")

// objectFile is the on-disk container; code is stored in its binary encoding.
type objectFile struct {
	Magic      string     `msgpack:"magic"`
	Schema     uint16     `msgpack:"schema"`
	ISA        uint16     `msgpack:"isa"`
	ABI        uint16     `msgpack:"abi"`
	Data       []byte     `msgpack:"data"`
	Code       []byte     `msgpack:"code"`
	Variables  []Variable `msgpack:"variables"`
	Boundaries []uint64   `msgpack:"boundaries"`
	Lines      []uint64   `msgpack:"lines"`
}

// WriteObject serializes p as a msgpack object file.
func WriteObject(w io.Writer, p *Program) error {
	obj := objectFile{
		Magic:      objectMagic,
		Schema:     objectSchemaVersion,
		ISA:        isa.FormatVersion,
		ABI:        isa.ABIVersion,
		Data:       p.Data,
		Code:       isa.EncodeAll(p.Code),
		Variables:  p.VariablesByAddress(),
		Boundaries: p.Metadata.StatementBoundaries,
		Lines:      p.Metadata.SourceLines,
	}
	return msgpack.NewEncoder(w).Encode(&obj)
}

// ReadObject is the inverse of WriteObject.
func ReadObject(r io.Reader) (*Program, error) {
	var obj objectFile
	if err := msgpack.NewDecoder(r).Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotObject, err)
	}
	if obj.Magic != objectMagic {
		return nil, ErrNotObject
	}
	if obj.Schema != objectSchemaVersion || obj.ISA != isa.FormatVersion {
		return nil, fmt.Errorf("object schema %d/isa %d, want %d/%d", obj.Schema, obj.ISA, objectSchemaVersion, isa.FormatVersion)
	}
	code, err := isa.DecodeAll(obj.Code)
	if err != nil {
		return nil, fmt.Errorf("decode code: %w", err)
	}
	p := &Program{
		Data: obj.Data,
		Code: code,
		Metadata: Metadata{
			Variables:           make(map[uint64]Variable, len(obj.Variables)),
			StatementBoundaries: obj.Boundaries,
			SourceLines:         obj.Lines,
		},
	}
	for _, v := range obj.Variables {
		p.Metadata.Variables[v.Address] = v
	}
	return p, nil
}

// WriteBinary writes only the encoded code segment.
func WriteBinary(w io.Writer, p *Program) error {
	_, err := w.Write(isa.EncodeAll(p.Code))
	return err
}
