// Package fuzztests houses Go fuzz harnesses for the conversion pipeline
// (source -> cst -> normalize -> emit -> format). Arbitrary input must never
// panic or hang: unsupported C++ is reported as an error, not a crash.
//
// Назначение: гонять байты через FileSet, парсер и оба прохода конвертера.
//
// Не делает: запись файлов, CLI, сравнение с эталоном.
package fuzztests
