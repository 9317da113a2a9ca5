
// Package fuzztests houses Go fuzz harnesses that exercise the formatter
// pipeline (source -> lexer -> token tree -> printer). Its goal is to smoke
// test robustness and guard against panics, lost text or unstable output on
// arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, построитель дерева и форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/tree,
// internal/format, internal/testkit.

package fuzztests
