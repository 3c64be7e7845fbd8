package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garbage-hunter/src/model"
)

func TestUnsafeBlockDetection(t *testing.T) {
	m := buildModel(t, `
fn peek(ptr: *const u8) -> u8 {
    unsafe {
        *ptr
    }
}`)

	issues := NewUnsafeAbuseRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, "features.unsafe_block", issues[0].MessageKey)
	assert.Equal(t, 2, issues[0].Line)
	assert.Equal(t, model.SeveritySpicy, issues[0].Severity)
}

func TestUnsafeTransmuteIsNuclear(t *testing.T) {
	m := buildModel(t, `
fn reinterpret(x: u32) -> f32 {
    unsafe { std::mem::transmute(x) }
}`)

	issues := NewUnsafeAbuseRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, "features.unsafe_transmute", issues[0].MessageKey)
	assert.Equal(t, model.SeverityNuclear, issues[0].Severity)
}

func TestUnsafeFunctionIsNuclear(t *testing.T) {
	m := buildModel(t, `
unsafe fn poke(ptr: *mut u8, v: u8) {
    *ptr = v;
}`)

	issues := NewUnsafeAbuseRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, "features.unsafe_function", issues[0].MessageKey)
	assert.Equal(t, model.SeverityNuclear, issues[0].Severity)
	assert.Equal(t, "poke", issues[0].Data["name"])
}

func TestFFIDetection(t *testing.T) {
	m := buildModel(t, `
extern "C" {
    fn free(ptr: *mut c_void);
}

#[no_mangle]
pub extern "C" fn entry() {
}`)

	issues := NewFFIAbuseRule().Detect(m)

	require.Len(t, issues, 3)
	assert.Equal(t, "features.ffi_extern_block", issues[0].MessageKey)
	assert.Equal(t, model.SeverityNuclear, issues[0].Severity)
	assert.Equal(t, "features.ffi_c_types", issues[1].MessageKey)
	assert.Equal(t, "features.ffi_no_mangle", issues[2].MessageKey)
}

func TestAsyncBlockingCallIsNuclear(t *testing.T) {
	m := buildModel(t, `
async fn poll_status() {
    std::thread::sleep(Duration::from_secs(1));
    refresh().await;
}`)

	issues := NewAsyncAbuseRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, "features.async_blocking_call", issues[0].MessageKey)
	assert.Equal(t, model.SeverityNuclear, issues[0].Severity)
}

func TestAsyncWithoutAwait(t *testing.T) {
	m := buildModel(t, `
async fn add(a: u32, b: u32) -> u32 {
    a + b
}`)

	issues := NewAsyncAbuseRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, "features.async_without_await", issues[0].MessageKey)
	assert.Equal(t, model.SeverityMild, issues[0].Severity)
}

func TestAsyncLeavesSyncCodeAlone(t *testing.T) {
	m := buildModel(t, `
fn wait_a_bit() {
    std::thread::sleep(Duration::from_secs(1));
}`)

	issues := NewAsyncAbuseRule().Detect(m)
	assert.Empty(t, issues)
}

func TestChannelBusyPoll(t *testing.T) {
	m := buildModel(t, `
fn drain(rx: Receiver<Job>) {
    loop {
        if let Ok(job) = rx.try_recv() {
            run(job);
        }
    }
}`)

	issues := NewChannelAbuseRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, "features.channel_busy_poll", issues[0].MessageKey)
	assert.Equal(t, model.SeveritySpicy, issues[0].Severity)
}

func TestChannelSprawl(t *testing.T) {
	m := buildModel(t, `
fn wire_up() {
    let (tx1, rx1) = mpsc::channel();
    let (tx2, rx2) = mpsc::channel();
    let (tx3, rx3) = mpsc::channel();
    let (tx4, rx4) = mpsc::channel();
}`)

	issues := NewChannelAbuseRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, "features.channel_sprawl", issues[0].MessageKey)
	assert.Equal(t, 4, issues[0].Data["channels"])
	assert.Equal(t, 2, issues[0].Line, "anchored at the first creation")
}

func TestMacroDefinitionDetection(t *testing.T) {
	m := buildModel(t, `
macro_rules! shortcut {
    ($x:expr) => {
        $x + 1
    };
}`)

	issues := NewMacroAbuseRule().Detect(m)

	require.Len(t, issues, 1)
	assert.Equal(t, "features.macro_definition", issues[0].MessageKey)
	assert.Equal(t, "shortcut", issues[0].Data["name"])
	assert.Equal(t, model.SeverityMild, issues[0].Severity)
}
