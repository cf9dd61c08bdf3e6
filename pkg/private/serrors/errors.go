// Copyright 2019 ETH Zurich, Anapaya Systems
// Copyright 2025 Network Systems Lab, OVGU Magdeburg
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serrors provides errors enriched with key/value context. Errors
// carry an optional underlying cause and, unless suppressed, a stack trace
// captured at construction. The returned errors cooperate with errors.Is and
// errors.As: for any returned error err, errors.Is(err, err) holds; if err
// wraps or joins err2, errors.Is(err, err2) holds; unrelated errors never
// compare equal, even when their messages match.
package serrors

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ctxPair is one item of context info.
type ctxPair struct {
	Key   string
	Value interface{}
}

// annotations is the context shared by all error implementations: sorted
// key/value pairs, an optional cause and an optional stack trace. The ctx
// slice is held by pointer so that the enclosing error values stay
// comparable.
type annotations struct {
	ctx   *[]ctxPair
	cause error
	stack *stack
}

func (a annotations) text() string {
	var buf strings.Builder
	if len(*a.ctx) != 0 {
		buf.WriteString(" ")
		encodeContext(&buf, *a.ctx)
	}
	if a.cause != nil {
		fmt.Fprintf(&buf, ": %s", a.cause)
	}
	return buf.String()
}

func (a annotations) encode(enc zapcore.ObjectEncoder) error {
	if a.cause != nil {
		if m, ok := a.cause.(zapcore.ObjectMarshaler); ok {
			if err := enc.AddObject("cause", m); err != nil {
				return err
			}
		} else {
			enc.AddString("cause", a.cause.Error())
		}
	}
	if a.stack != nil {
		if err := enc.AddArray("stacktrace", a.stack); err != nil {
			return err
		}
	}
	for _, pair := range *a.ctx {
		zap.Any(pair.Key, pair.Value).AddTo(enc)
	}
	return nil
}

// StackTrace returns the attached stack trace if there is any.
func (a annotations) StackTrace() StackTrace {
	if a.stack == nil {
		return nil
	}
	return a.stack.StackTrace()
}

func annotate(cause error, withStack bool, errCtx ...interface{}) annotations {
	np := len(errCtx) / 2
	ctx := make([]ctxPair, np)
	for i := 0; i < np; i++ {
		ctx[i] = ctxPair{Key: fmt.Sprint(errCtx[2*i]), Value: errCtx[2*i+1]}
	}
	sort.Slice(ctx, func(a, b int) bool {
		return ctx[a].Key < ctx[b].Key
	})

	a := annotations{
		cause: cause,
		ctx:   &ctx,
	}
	// One stack per error chain: capture only if the cause does not already
	// carry one from this package.
	if withStack && (cause == nil || !stacked(cause)) {
		a.stack = callers()
	}
	return a
}

// stacked reports whether err has an error from this package in its chain.
// Such an error either carries a stack trace or was deliberately constructed
// without one; in both cases capturing another is pointless.
func stacked(err error) bool {
	var b *basicError
	var j *joinedError
	return errors.As(err, &b) || errors.As(err, &j)
}

// basicError is an error with a plain string message.
type basicError struct {
	annotations
	msg string
}

func (e *basicError) Error() string {
	return e.msg + e.annotations.text()
}

func (e *basicError) Unwrap() error {
	return e.cause
}

// MarshalLogObject implements zapcore.ObjectMarshaler for structured log
// output.
func (e *basicError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.msg)
	return e.annotations.encode(enc)
}

// New creates an error with the given message and context, plus a stack
// trace. Two errors created by New are never equal under errors.Is, which
// makes the result suitable as a sentinel value.
func New(msg string, errCtx ...interface{}) error {
	return &basicError{
		annotations: annotate(nil, true, errCtx...),
		msg:         msg,
	}
}

// Wrap returns an error with the given message that wraps cause and attaches
// context. A stack trace is captured unless cause already carries one. The
// returned error matches cause under errors.Is.
func Wrap(msg string, cause error, errCtx ...interface{}) error {
	return &basicError{
		annotations: annotate(cause, true, errCtx...),
		msg:         msg,
	}
}

// WrapNoStack is Wrap without capturing a stack trace. A stack trace carried
// by cause is preserved.
func WrapNoStack(msg string, cause error, errCtx ...interface{}) error {
	return &basicError{
		annotations: annotate(cause, false, errCtx...),
		msg:         msg,
	}
}

// joinedError aggregates context around an existing base error, typically a
// sentinel, without assuming anything about its implementation.
type joinedError struct {
	annotations
	error error
}

func (e *joinedError) Error() string {
	return e.error.Error() + e.annotations.text()
}

func (e *joinedError) Unwrap() []error {
	return []error{e.error, e.cause}
}

// MarshalLogObject implements zapcore.ObjectMarshaler. The base error is not
// dissected; it is rendered as its message.
func (e *joinedError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.error.Error())
	return e.annotations.encode(enc)
}

// Join returns an error combining a base error, a cause and context. The
// result matches both err and cause under errors.Is. A stack trace is
// captured unless cause already carries one. Join(nil, nil) is nil.
func Join(err, cause error, errCtx ...interface{}) error {
	if err == nil && cause == nil {
		return nil
	}
	return &joinedError{
		annotations: annotate(cause, true, errCtx...),
		error:       err,
	}
}

// JoinNoStack is Join without capturing a stack trace. A stack trace carried
// by cause is preserved.
func JoinNoStack(err, cause error, errCtx ...interface{}) error {
	if err == nil && cause == nil {
		return nil
	}
	return &joinedError{
		annotations: annotate(cause, false, errCtx...),
		error:       err,
	}
}

// List is a slice of errors.
type List []error

// Error implements the error interface.
func (e List) Error() string {
	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, err.Error())
	}
	return fmt.Sprintf("[ %s ]", strings.Join(s, "; "))
}

// ToError returns the list as an error value, or nil if the list is empty.
func (e List) ToError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// MarshalLogArray implements zapcore.ArrayMarshaler for structured log
// output of error lists.
func (e List) MarshalLogArray(ae zapcore.ArrayEncoder) error {
	for _, err := range e {
		if m, ok := err.(zapcore.ObjectMarshaler); ok {
			if err := ae.AppendObject(m); err != nil {
				return err
			}
		} else {
			ae.AppendString(err.Error())
		}
	}
	return nil
}

func encodeContext(buf io.Writer, pairs []ctxPair) {
	fmt.Fprint(buf, "{")
	for i, p := range pairs {
		fmt.Fprintf(buf, "%s=%v", p.Key, p.Value)
		if i != len(pairs)-1 {
			fmt.Fprint(buf, "; ")
		}
	}
	fmt.Fprint(buf, "}")
}
