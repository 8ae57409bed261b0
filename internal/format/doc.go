// Package format is the cosmetic pass run over converted TypeScript.
//
// Назначение: привести вывод конвертера к настройкам проекта (отступы,
// кавычки, висячие запятые) и сообщить о слишком длинных строках.
// Не делает: разбора TypeScript; работает построчно и рассчитывает на то,
// что вход уже синтаксически корректен.
package format
