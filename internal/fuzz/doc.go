// Package fuzztests holds Go fuzz harnesses for the tokiwen front end and
// code generator (source -> lexer -> parser -> compiler). They guard against
// panics, hangs and broken tree or program invariants on arbitrary input.
//
// Назначение: загрузить байты в FileSet и прогнать их через весь конвейер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
