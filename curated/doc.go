// This file is part of GopherCoCo.
//
// GopherCoCo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherCoCo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherCoCo.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function. Errorf() takes a formatting pattern and placeholder
// values, exactly like fmt.Errorf(), but the pattern is kept so that it can
// be tested for later.
//
// The pattern is what identifies the error. Patterns that are tested for
// should be stored as a const string in the package that creates them:
//
//	const RAMSizeError = "memory: installed RAM too small (%d bytes)"
//
//	err := curated.Errorf(RAMSizeError, 4096)
//
//	if curated.Is(err, RAMSizeError) {
//		fmt.Println("true")
//	}
//
// The Has() function does the same thing but checks every curated error in
// the chain. A chain is created simply by passing a curated error as one of
// the placeholder values:
//
//	f := curated.Errorf("hardware: %v", err)
//
//	curated.Has(f, RAMSizeError) // true
//	curated.Is(f, RAMSizeError)  // false
//
// The Error() function normalises the message so that duplicate adjacent
// parts do not appear. Parts are separated by the sub-string ": ". For
// example, wrapping an error "memory: missing ROM region" in the pattern
// "memory: %v" results in the message:
//
//	memory: missing ROM region
//
// and not:
//
//	memory: memory: missing ROM region
//
// IsAny() answers whether the error was created by Errorf() at all. It's
// useful to think of curated errors as the expected errors and any other
// error as unexpected.
package curated
