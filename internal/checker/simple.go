package checker

import (
	"strings"

	"synscan/internal/diag"
)

func checkPHP(rep diag.Reporter, doc *Document, _ Options) {
	for i, line := range doc.Lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" ||
			hasSuffixAny(trimmed, ";", "{", "}") ||
			hasPrefixAny(trimmed, "//", "/*", "*", "#", "<?php", "?>") {
			continue
		}
		diag.ReportWarning(rep, diag.HeurMissingSemicolon, i+1, endColumn(line), msgMissingSemicolon)
	}
}

func checkSQL(rep diag.Reporter, doc *Document, _ Options) {
	for i, line := range doc.Lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasSuffix(trimmed, ";") || strings.HasPrefix(trimmed, "--") {
			continue
		}
		diag.ReportWarning(rep, diag.HeurMissingSemicolon, i+1, endColumn(line), msgMissingSemicolon)
	}
}

func checkShell(rep diag.Reporter, doc *Document, _ Options) {
	for i, line := range doc.Lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !strings.Contains(line, "=") || strings.ContainsAny(line, "<>") || strings.Contains(line, "==") || strings.Contains(line, "!=") {
			continue
		}
		if idx := unspacedAssignment(line); idx >= 0 {
			diag.ReportWarning(rep, diag.HeurAssignSpacing, i+1, column(line, idx), "separate the assignment with spaces around '='")
		}
	}
}

// unspacedAssignment returns the byte offset of the first '=' when both
// sides around it are non-empty and neither touches it with a space, else -1.
// The right side ends at the next '='.
func unspacedAssignment(line string) int {
	eq := strings.IndexByte(line, '=')
	left := line[:eq]
	right := line[eq+1:]
	if next := strings.IndexByte(right, '='); next >= 0 {
		right = right[:next]
	}
	if strings.TrimSpace(left) == "" || strings.TrimSpace(right) == "" {
		return -1
	}
	if strings.HasSuffix(left, " ") || strings.HasPrefix(right, " ") {
		return -1
	}
	return eq
}

// asmMnemonics covers common x86 instructions and NASM data/section
// directives.
var asmMnemonics = map[string]struct{}{}

func init() {
	for _, m := range strings.Fields(`
		mov movzx movsx movsb movsw movsd lea xchg cmov
		add sub mul imul div idiv inc dec neg adc sbb
		and or xor not shl shr sal sar rol ror
		cmp test push pop pusha popa pushf popf
		jmp je jne jz jnz jl jle jg jge ja jae jb jbe jc jnc js jns jo jno
		call ret retn leave enter loop loope loopne
		int syscall sysenter nop hlt cli sti cld std
		cbw cwd cdq cqo rep repe repne stosb stosw stosd lodsb lodsw lodsd
		db dw dd dq dt resb resw resd resq equ times incbin
		section segment global extern bits org align
	`) {
		asmMnemonics[m] = struct{}{}
	}
}

func checkAssembly(rep diag.Reporter, doc *Document, _ Options) {
	for i, line := range doc.Lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || hasPrefixAny(trimmed, ";", "#", ".", "%", "[") {
			continue
		}
		// probable label
		if strings.Contains(trimmed, ":") {
			continue
		}
		fields := strings.Fields(strings.ToLower(trimmed))
		if isMnemonic(fields[0]) || (len(fields) > 1 && isMnemonic(fields[1])) {
			continue
		}
		diag.ReportWarning(rep, diag.HeurUnknownMnemonic, i+1, 1, "possibly invalid instruction '"+fields[0]+"'")
	}
}

func isMnemonic(w string) bool {
	w = strings.TrimSuffix(w, ",")
	_, ok := asmMnemonics[w]
	return ok
}

func checkGeneric(rep diag.Reporter, doc *Document, _ Options) {
	for i, line := range doc.Lines {
		n := i + 1
		if strings.HasSuffix(line, " ") {
			diag.ReportWarning(rep, diag.TextTrailingSpace, n, width(line), "trailing whitespace")
		}
		if tab := strings.IndexByte(line, '\t'); tab >= 0 {
			diag.ReportWarning(rep, diag.TextTabUsage, n, column(line, tab), "tab character: consider spaces")
		}
	}
}
