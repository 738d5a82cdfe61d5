package dimension

type tipKey struct {
	axis Axis
	dir  Direction
}

var axisTips = map[tipKey]string{
	{AxisX, Over}:  "X oversize: reduce the X offset in defr3d.ini and check the bar for caked loose sand at the ends",
	{AxisX, Under}: "X undersize: increase the X offset in defr3d.ini and check for broken or eroded bar ends",
	{AxisY, Over}:  "Y oversize: reduce the Y offset in defr3d.ini; excess binder bleed can also widen the bar",
	{AxisY, Under}: "Y undersize: increase the Y offset in defr3d.ini and verify the recoater spreads full layers",
	{AxisZ, Over}:  "Z oversize: reduce the zCompensation parameter; check the layer height setting",
	{AxisZ, Under}: "Z undersize: increase the zCompensation parameter; check for missing layers at the start of the job",
}

// GeneralTips follow the per-axis tips whenever any dimension fails.
var GeneralTips = []string{
	"Check offset values in defr3d.ini file",
	"Verify zCompensation parameter",
	"Ensure proper printer calibration",
}

// TipFor returns the static tip for an axis that failed in a direction.
func TipFor(a Axis, d Direction) string {
	return axisTips[tipKey{a, d}]
}

// Tips returns the troubleshooting tips for a result, empty when it passed.
func Tips(r Result) []string {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	tips := make([]string, 0, len(failed)+len(GeneralTips))
	for _, ar := range failed {
		if tip := TipFor(ar.Axis, ar.Direction); tip != "" {
			tips = append(tips, tip)
		}
	}
	return append(tips, GeneralTips...)
}
