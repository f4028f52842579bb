package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveInclude(t *testing.T) {
	tests := []struct {
		name          string
		include       string
		descriptorDir string
		workDir       string
		want          string
	}{
		{"sibling of project dir", `..\Inc`, "/proj/MDK-ARM", "/proj", "Inc"},
		{"nested windows separators", `..\Drivers\CMSIS\Include`, "/proj/MDK-ARM", "/proj", "Drivers/CMSIS/Include"},
		{"inside project dir", `.\RTE\_Debug`, "/proj/MDK-ARM", "/proj", "MDK-ARM/RTE/_Debug"},
		{"project dir itself", ".", "/proj/MDK-ARM", "/proj", "MDK-ARM"},
		{"working dir itself", "..", "/proj/MDK-ARM", "/proj", "."},
		{"escapes working dir", "../../shared/inc", "/proj/MDK-ARM", "/proj", "/shared/inc"},
		{"absolute under working dir", "/proj/Core/Inc", "/proj/MDK-ARM", "/proj", "Core/Inc"},
		{"absolute outside working dir", "/opt/arm/include", "/proj/MDK-ARM", "/proj", "/opt/arm/include"},
		{"sibling with common prefix", "/proj2/inc", "/proj/MDK-ARM", "/proj", "/proj2/inc"},
		{"other drive", `C:/Shared/Inc`, "D:/proj/MDK-ARM", "D:/proj", "C:/Shared/Inc"},
		{"other drive backslashes", `C:\Shared\Inc`, `D:\proj\MDK-ARM`, `D:\proj`, "C:/Shared/Inc"},
		{"same drive relative", `..\Inc`, `D:\proj\MDK-ARM`, `D:\proj`, "Inc"},
		{"drive letter case", `d:\proj\Core\Inc`, `D:\proj\MDK-ARM`, `D:\proj`, "Core/Inc"},
		{"drive vs posix root", `C:\Keil\include`, "/proj/MDK-ARM", "/proj", "C:/Keil/include"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveInclude(tt.include, tt.descriptorDir, tt.workDir))
		})
	}
}

func TestResolveInclude_DotPrefixIsEquivalent(t *testing.T) {
	a := ResolveInclude("./sub/inc", "/proj/MDK-ARM", "/proj")
	b := ResolveInclude("sub/inc", "/proj/MDK-ARM", "/proj")
	assert.Equal(t, "MDK-ARM/sub/inc", a)
	assert.Equal(t, a, b)
}

func TestIsAbs(t *testing.T) {
	assert.True(t, isAbs("/usr/include"))
	assert.True(t, isAbs("C:/Keil"))
	assert.True(t, isAbs("//server/share"))
	assert.False(t, isAbs("C:Keil"))
	assert.False(t, isAbs("../Inc"))
	assert.False(t, isAbs("Inc"))
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/proj", "/proj"))
	assert.True(t, within("/proj", "/proj/Inc"))
	assert.True(t, within("/", "/proj"))
	assert.False(t, within("/proj", "/proj2"))
	assert.False(t, within("C:/proj", "D:/proj/Inc"))
	assert.True(t, within("C:/proj", "C:/proj/Inc"))
}

func TestSplitVolume(t *testing.T) {
	tests := []struct {
		in, vol, rest string
	}{
		{"c:/Keil/include", "C:", "/Keil/include"},
		{"//srv/share/proj/Inc", "//srv/share", "/proj/Inc"},
		{"//srv/share", "//srv/share", "/"},
		{"//srv", "", "//srv"},
		{"///usr/include", "", "///usr/include"},
		{"/usr/include", "", "/usr/include"},
		{"Inc", "", "Inc"},
	}

	for _, tt := range tests {
		vol, rest := splitVolume(tt.in)
		assert.Equal(t, tt.vol, vol, tt.in)
		assert.Equal(t, tt.rest, rest, tt.in)
	}
}

func TestResolveInclude_UNCShares(t *testing.T) {
	const descriptorDir, workDir = `\\srv\share\proj\MDK-ARM`, `\\srv\share\proj`

	assert.Equal(t, "Inc", ResolveInclude(`..\Inc`, descriptorDir, workDir))
	assert.Equal(t, "Core/Inc", ResolveInclude(`\\SRV\Share\proj\Core\Inc`, descriptorDir, workDir))
	assert.Equal(t, "//srv/share/common/inc", ResolveInclude(`..\..\common\inc`, descriptorDir, workDir))
	assert.Equal(t, "//srv/other/inc", ResolveInclude(`\\srv\other\inc`, descriptorDir, workDir))
	assert.Equal(t, "//srv/share/inc", ResolveInclude(`\\srv\share\inc`, "/proj/MDK-ARM", "/proj"))

	// The share name is part of the volume, not a directory that can be climbed out of.
	_, err := rel(clean("//srv/share/proj"), clean("//srv/other/proj/inc"))
	assert.ErrorIs(t, err, errVolumeMismatch)
	assert.False(t, within(clean("//srv/share"), clean("//srv/share2/inc")))
}
