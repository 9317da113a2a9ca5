// Package format turns Motoko and Candid source text into its canonical
// layout.
//
// Назначение: нормализация текста, построение дерева токенов, сборка
// документа по таблице правил пробелов и печать с переносами по ширине.
// Не делает: семантического анализа, переформатирования комментариев, IO.
// Зависимости: internal/normalize, internal/tree, internal/rules, internal/doc.
package format
