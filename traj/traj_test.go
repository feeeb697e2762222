/*
 * traj_test.go, part of goneo.
 *
 * Copyright 2025 Federico Zahariev <fzahari@iastate.edu>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package traj

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fzahari/goneo/dynamics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(n int) *dynamics.Result {
	r := &dynamics.Result{Method: "rt-cneo", Status: dynamics.Completed}
	for i := 0; i < n; i++ {
		t := float64(i) * 0.1
		r.Steps = append(r.Steps, dynamics.Step{
			Time:              t,
			QuantumPosition:   0.3 * math.Sin(t),
			ClassicalPosition: 0.28 * math.Sin(t),
			ElectronicEnergy:  -0.5,
			ProtonicEnergy:    -0.004 + 1e-5*t,
			TotalEnergy:       -0.504 + 1e-5*t,
			QuantumForce:      -0.01 * math.Cos(t),
			SmoothedForce:     -0.009 * math.Cos(t),
			ConstraintForce:   0.002 * math.Cos(t),
			Field:             0.015,
			TraceDeviation:    1e-12,
			HermDeviation:     1e-13,
		})
	}
	return r
}

//Round trips through all three on-disk forms. The text stores 8 decimal
//digits, so values survive to about 1e-8 relative precision.
func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"traj.csv", "traj.csv.zst", "traj.csv.gz"} {
		path := filepath.Join(t.TempDir(), name)
		orig := sampleResult(25)

		w, err := NewWriter(path)
		require.NoError(t, err, name)
		require.NoError(t, w.WriteResult(orig), name)
		assert.Equal(t, 25, w.Len(), name)
		require.NoError(t, w.Close(), name)

		back, err := Read(path)
		require.NoError(t, err, name)
		require.Len(t, back.Steps, 25, name)
		for i, s := range back.Steps {
			o := orig.Steps[i]
			assert.InDelta(t, o.Time, s.Time, 1e-8, name)
			assert.InDelta(t, o.QuantumPosition, s.QuantumPosition, 1e-8, name)
			assert.InDelta(t, o.ClassicalPosition, s.ClassicalPosition, 1e-8, name)
			assert.InDelta(t, o.TotalEnergy, s.TotalEnergy, 1e-8, name)
			assert.InDelta(t, o.ConstraintForce, s.ConstraintForce, 1e-10, name)
			assert.InDelta(t, o.TraceDeviation, s.TraceDeviation, 1e-14, name)
		}
	}
}

//Compressed files must actually be compressed, not plain text with a fancy
//extension.
func TestCompressionHappens(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.csv")
	zst := filepath.Join(dir, "a.csv.zst")
	r := sampleResult(500)
	for _, p := range []string{plain, zst} {
		w, err := NewWriter(p)
		require.NoError(t, err)
		require.NoError(t, w.WriteResult(r))
		require.NoError(t, w.Close())
	}
	pInfo, err := os.Stat(plain)
	require.NoError(t, err)
	zInfo, err := os.Stat(zst)
	require.NoError(t, err)
	assert.Less(t, zInfo.Size(), pInfo.Size())
}

func TestClosedWriterRejectsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WNext(sampleResult(1).Steps[0]))
	require.NoError(t, w.Close())

	err = w.WNext(sampleResult(1).Steps[0])
	require.Error(t, err)
	var terr Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, path, terr.FileName())
	//A second close is a no-op, not an error.
	assert.NoError(t, w.Close())
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Read(filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatal("reading a missing file should fail")
	}

	short := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(short, []byte("# header\n1.0,2.0,3.0\n"), 0644))
	_, err := Read(short)
	assert.Error(t, err, "row with too few columns must be rejected")

	garbage := filepath.Join(dir, "garbage.csv")
	row := "1,2,3,4,5,6,7,8,9,ten,11,12\n"
	require.NoError(t, os.WriteFile(garbage, []byte(row), 0644))
	_, err = Read(garbage)
	assert.Error(t, err, "non-numeric field must be rejected")
}

//Comments and blank lines are tolerated so files can be annotated by hand.
func TestReadSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotated.csv")
	content := "# my run\n\n" +
		"0,0.1,0.1,-0.5,-0.004,-0.504,0,0,0,0.015,1e-12,1e-13\n" +
		"# checkpoint\n" +
		"0.1,0.2,0.19,-0.5,-0.004,-0.504,0,0,0,0.015,1e-12,1e-13\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	r, err := Read(path)
	require.NoError(t, err)
	require.Len(t, r.Steps, 2)
	assert.Equal(t, 0.2, r.Steps[1].QuantumPosition)
}
