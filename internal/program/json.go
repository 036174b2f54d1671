package program

import (
	"encoding/json"
	"io"
)

type jsonInstruction struct {
	Op       string   `json:"op"`
	Opcode   uint8    `json:"opcode"`
	Operands []uint64 `json:"operands"`
	Line     uint64   `json:"line"`
}

type jsonProgram struct {
	DataSize   int               `json:"data_size"`
	Code       []jsonInstruction `json:"code"`
	Variables  []Variable        `json:"variables"`
	Boundaries []uint64          `json:"statement_boundaries"`
}

// WriteJSON exports the program for the web editor.
func (p *Program) WriteJSON(w io.Writer) error {
	out := jsonProgram{
		DataSize:   len(p.Data),
		Code:       make([]jsonInstruction, len(p.Code)),
		Variables:  p.VariablesByAddress(),
		Boundaries: p.Metadata.StatementBoundaries,
	}
	for i, ins := range p.Code {
		out.Code[i] = jsonInstruction{
			Op:       ins.Op.String(),
			Opcode:   uint8(ins.Op),
			Operands: append([]uint64{}, ins.Operands[:ins.Op.Operands()]...),
			Line:     p.Line(i),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
