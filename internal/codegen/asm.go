package codegen

import (
	"fmt"
	"strings"
)

// assembler accumulates NASM-syntax text (spec.md §4.7): instructions
// indented under labels, memory references as [reg + imm] or
// [reg + reg*factor + imm], immediates formatted signed or hex.
type assembler struct {
	buf strings.Builder
}

func (a *assembler) String() string { return a.buf.String() }

func (a *assembler) raw(line string) {
	a.buf.WriteString(line)
	a.buf.WriteByte('\n')
}

func (a *assembler) comment(s string) {
	a.buf.WriteString("  ; ")
	a.buf.WriteString(s)
	a.buf.WriteByte('\n')
}

func (a *assembler) label(name string) {
	a.buf.WriteString(name)
	a.buf.WriteString(":\n")
}

func (a *assembler) instr0(mnemonic string) {
	fmt.Fprintf(&a.buf, "  %s\n", mnemonic)
}

func (a *assembler) instr1(mnemonic, dst string) {
	fmt.Fprintf(&a.buf, "  %-6s %s\n", mnemonic, dst)
}

func (a *assembler) instr2(mnemonic, dst, src string) {
	fmt.Fprintf(&a.buf, "  %-6s %s, %s\n", mnemonic, dst, src)
}

func (a *assembler) mov(dst, src string)  { a.instr2("mov", dst, src) }
func (a *assembler) lea(dst, src string)  { a.instr2("lea", dst, src) }
func (a *assembler) add(dst, src string)  { a.instr2("add", dst, src) }
func (a *assembler) sub(dst, src string)  { a.instr2("sub", dst, src) }
func (a *assembler) imul(dst, src string) { a.instr2("imul", dst, src) }
func (a *assembler) and(dst, src string)  { a.instr2("and", dst, src) }
func (a *assembler) or(dst, src string)   { a.instr2("or", dst, src) }
func (a *assembler) xor(dst, src string)  { a.instr2("xor", dst, src) }
func (a *assembler) cmp(dst, src string)  { a.instr2("cmp", dst, src) }
func (a *assembler) test(dst, src string) { a.instr2("test", dst, src) }
func (a *assembler) sar(dst, src string)  { a.instr2("sar", dst, src) }
func (a *assembler) sal(dst, src string)  { a.instr2("sal", dst, src) }

func (a *assembler) push(src string) { a.instr1("push", src) }
func (a *assembler) pop(src string)  { a.instr1("pop", src) }
func (a *assembler) jmp(target string) { a.instr1("jmp", target) }
func (a *assembler) call(target string) { a.instr1("call", target) }
func (a *assembler) jcc(cc, target string) { a.instr1("j"+cc, target) }
func (a *assembler) ret() { a.instr0("ret") }

// reg names used throughout the emitter.
const (
	rax = "rax"
	rdx = "rdx"
	rcx = "rcx"
	rdi = "rdi"
	rsi = "rsi"
	r8  = "r8"
	r9  = "r9"
	r15 = "r15"
	rsp = "rsp"
)

// mem formats a base+displacement memory operand, e.g. "[rsp - 16]".
func mem(base string, disp int) string {
	switch {
	case disp == 0:
		return fmt.Sprintf("[%s]", base)
	case disp > 0:
		return fmt.Sprintf("[%s + %d]", base, disp)
	default:
		return fmt.Sprintf("[%s - %d]", base, -disp)
	}
}

// memIndexed formats a base+index*scale+displacement operand.
func memIndexed(base, index string, scale, disp int) string {
	if disp == 0 {
		return fmt.Sprintf("[%s + %s*%d]", base, index, scale)
	}
	if disp > 0 {
		return fmt.Sprintf("[%s + %s*%d + %d]", base, index, scale, disp)
	}
	return fmt.Sprintf("[%s + %s*%d - %d]", base, index, scale, -disp)
}

// hex formats an unsigned 64-bit immediate as a NASM hex literal.
func hex(v uint64) string { return fmt.Sprintf("0x%x", v) }

// slot returns the operand for stack slot i (0-indexed) of the current
// function's frame: -8*(i+1) from the entry Rsp.
func slot(i int) string { return mem(rsp, -8*(i+1)) }
