// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	"golang.org/x/exp/constraints"
)

func CmpUint[T constraints.Unsigned](a, b T) int {
	switch {
	case a < b:
		return -1
	case a == b:
		return 0
	default:
		return 1
	}
}

type _Ordered[T any] interface {
	Cmp(T) int
}

type Ordered[T interface{ Cmp(T) int }] interface {
	Cmp(T) int
}

type NativeOrdered[T constraints.Ordered] struct {
	Val T
}

func (a NativeOrdered[T]) Cmp(b NativeOrdered[T]) int {
	switch {
	case a.Val < b.Val:
		return -1
	case a.Val > b.Val:
		return 1
	default:
		return 0
	}
}

var _ Ordered[NativeOrdered[int]] = NativeOrdered[int]{}

// Numeric is Ordered plus the arithmetic an aggregate query (sum,
// mean, the midpoint case of median) needs. It deliberately is not
// satisfied by NativeOrdered[string]: a string-keyed container can be
// compared but not summed, and that should be a compile error, not a
// runtime one.
type Numeric[T any] interface {
	_Ordered[T]
	Plus(T) T
	Scale(n int) T
	Float() float64
}

// NumericKey wraps an integer or floating-point value as a Numeric
// key. Use it (instead of NativeOrdered[T]) for any container whose
// keys will be fed through a Sum/Mean/Median query.
type NumericKey[T constraints.Integer | constraints.Float] struct {
	Val T
}

func (a NumericKey[T]) Cmp(b NumericKey[T]) int {
	switch {
	case a.Val < b.Val:
		return -1
	case a.Val > b.Val:
		return 1
	default:
		return 0
	}
}

func (a NumericKey[T]) Plus(b NumericKey[T]) NumericKey[T] {
	return NumericKey[T]{Val: a.Val + b.Val}
}

func (a NumericKey[T]) Scale(n int) NumericKey[T] {
	return NumericKey[T]{Val: a.Val * T(n)}
}

func (a NumericKey[T]) Float() float64 {
	return float64(a.Val)
}

var _ Numeric[NumericKey[int]] = NumericKey[int]{}
