package tracker

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/mobpatch/internal/config"
	"github.com/udisondev/mobpatch/internal/constants"
	"github.com/udisondev/mobpatch/internal/gameserver/clientpackets"
	"github.com/udisondev/mobpatch/internal/gameserver/serverpackets"
	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/patch"
	"github.com/udisondev/mobpatch/internal/protocol"
	"github.com/udisondev/mobpatch/internal/world"
)

type testObserver struct {
	t    *testing.T
	conn net.Conn
	buf  []byte
}

func (o *testObserver) send(payload []byte) {
	o.t.Helper()
	require.NoError(o.t, protocol.Send(o.conn, testCipher(o.t), payload))
}

// next reads one packet and returns its opcode and body.
func (o *testObserver) next() (byte, []byte) {
	o.t.Helper()
	require.NoError(o.t, o.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	payload, err := protocol.ReadPacket(o.conn, testCipher(o.t), o.buf)
	require.NoError(o.t, err)
	return payload[0], payload[1:]
}

func (o *testObserver) track(objectID uint32) {
	o.t.Helper()
	data, err := (&clientpackets.RequestTrack{ObjectID: int32(objectID)}).Write()
	require.NoError(o.t, err)
	o.send(data)
}

type fixture struct {
	srv    *Server
	ln     net.Listener
	w      *world.World
	zombie *patch.MobPatch
	steve  *patch.PlayerPatch
}

func startServer(t *testing.T) *fixture {
	t.Helper()
	w := world.New(world.SideServer)
	srv, err := NewServer(config.Tracker{SessionKey: testKeyHex}, w, NewRegistry())
	require.NoError(t, err)

	tmpl := model.NewMobTemplate(1, "Zombie", model.StyleMelee, 20, 1.74, 16, 0.23, model.ItemSword)
	zombie := patch.NewMobPatch(model.NewMob(w.IDs().NextMobID(), tmpl, model.NewVec3(1, 2, 3)),
		patch.FactionUndead, nil, patch.WithTrackerSender(srv.Broadcaster()))
	require.NoError(t, w.Add(zombie))

	steve := patch.NewPlayerPatch(model.NewPlayer(w.IDs().NextPlayerID(), "acc", "Steve", model.NewVec3(5, 2, 3)))
	require.NoError(t, w.Add(steve))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return &fixture{srv: srv, ln: ln, w: w, zombie: zombie, steve: steve}
}

func (f *fixture) connect(t *testing.T) *testObserver {
	t.Helper()
	conn, err := net.Dial("tcp", f.ln.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &testObserver{t: t, conn: conn, buf: make([]byte, constants.ReadBufferSize)}
}

func TestServer_AddrAfterServe(t *testing.T) {
	f := startServer(t)

	// Serve сохраняет listener в своей горутине
	require.Eventually(t, func() bool { return f.srv.Addr() != nil }, time.Second, 5*time.Millisecond)
	assert.Equal(t, f.ln.Addr().String(), f.srv.Addr().String())
}

func TestNewServer_BadKey(t *testing.T) {
	_, err := NewServer(config.Tracker{SessionKey: "abc"}, world.New(world.SideServer), NewRegistry())
	assert.Error(t, err)
}

func TestServer_SendsMobInfoOnConnect(t *testing.T) {
	f := startServer(t)
	o := f.connect(t)

	opcode, body := o.next()
	require.Equal(t, byte(serverpackets.OpcodeMobInfo), opcode)
	info, err := serverpackets.ParseMobInfo(body)
	require.NoError(t, err)
	assert.Equal(t, int32(f.zombie.Mob().ObjectID()), info.ObjectID)
	assert.Equal(t, "Zombie", info.Name)
	assert.Equal(t, int8(patch.FactionUndead), info.Faction)
}

func TestServer_TrackSendsLateJoinState(t *testing.T) {
	f := startServer(t)
	f.zombie.SetAttackTargetSync(f.steve.Entity())

	o := f.connect(t)
	o.next() // MobInfo
	o.track(f.zombie.Mob().ObjectID())

	opcode, _ := o.next()
	assert.Equal(t, byte(serverpackets.OpcodeMobStatus), opcode)

	opcode, body := o.next()
	require.Equal(t, byte(serverpackets.OpcodeSetAttackTarget), opcode)
	pkt, err := serverpackets.ParseSetAttackTarget(body)
	require.NoError(t, err)
	assert.Equal(t, int32(f.zombie.Mob().ObjectID()), pkt.EntityID)
	assert.Equal(t, int32(f.steve.Entity().ObjectID()), pkt.TargetID)
}

func TestServer_TrackNoTargetSendsSentinel(t *testing.T) {
	f := startServer(t)
	o := f.connect(t)
	o.next()
	o.track(f.zombie.Mob().ObjectID())
	o.next()

	_, body := o.next()
	pkt, err := serverpackets.ParseSetAttackTarget(body)
	require.NoError(t, err)
	assert.Equal(t, serverpackets.NoTarget, pkt.TargetID)
}

func TestServer_StreamsTargetChanges(t *testing.T) {
	f := startServer(t)
	o := f.connect(t)
	o.next()
	o.track(f.zombie.Mob().ObjectID())
	o.next()
	o.next()

	id := f.zombie.Mob().ObjectID()
	require.Eventually(t, func() bool {
		return len(f.srv.registry.Trackers(id)) == 1
	}, time.Second, 5*time.Millisecond)

	f.zombie.SetAttackTargetSync(f.steve.Entity())
	_, body := o.next()
	pkt, err := serverpackets.ParseSetAttackTarget(body)
	require.NoError(t, err)
	assert.Equal(t, int32(f.steve.Entity().ObjectID()), pkt.TargetID)

	f.zombie.SetAttackTargetSync(nil)
	_, body = o.next()
	pkt, err = serverpackets.ParseSetAttackTarget(body)
	require.NoError(t, err)
	assert.Equal(t, serverpackets.NoTarget, pkt.TargetID)
}

func TestServer_UntrackStopsStream(t *testing.T) {
	f := startServer(t)
	o := f.connect(t)
	o.next()
	id := f.zombie.Mob().ObjectID()
	o.track(id)
	o.next()
	o.next()

	data, err := (&clientpackets.RequestUntrack{ObjectID: int32(id)}).Write()
	require.NoError(t, err)
	o.send(data)

	require.Eventually(t, func() bool {
		return len(f.srv.registry.Trackers(id)) == 0
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, f.srv.Broadcaster().SendToTrackers(id, []byte{1}))
}

func TestServer_TrackUnknownSendsDelete(t *testing.T) {
	f := startServer(t)
	o := f.connect(t)
	o.next()
	o.track(0x2FFFFFFF)

	opcode, body := o.next()
	require.Equal(t, byte(serverpackets.OpcodeDeleteObject), opcode)
	pkt, err := serverpackets.ParseDeleteObject(body)
	require.NoError(t, err)
	assert.Equal(t, int32(0x2FFFFFFF), pkt.ObjectID)
}

func TestServer_AnnounceSpawnAndRemoval(t *testing.T) {
	f := startServer(t)
	o := f.connect(t)
	o.next()

	require.Eventually(t, func() bool {
		return f.srv.registry.SessionCount() == 1
	}, time.Second, 5*time.Millisecond)

	tmpl := model.NewMobTemplate(2, "Skeleton", model.StyleRanged, 20, 1.74, 16, 0.25, model.ItemBow)
	skel := patch.NewMobPatch(model.NewMob(f.w.IDs().NextMobID(), tmpl, model.Vec3{}), patch.FactionUndead, nil)
	require.NoError(t, f.w.Add(skel))

	assert.Equal(t, 1, f.srv.AnnounceSpawn(skel))
	opcode, _ := o.next()
	assert.Equal(t, byte(serverpackets.OpcodeMobInfo), opcode)

	assert.Equal(t, 1, f.srv.AnnounceRemoval(skel.Mob().ObjectID()))
	opcode, _ = o.next()
	assert.Equal(t, byte(serverpackets.OpcodeDeleteObject), opcode)
}

func TestServer_DisconnectRemovesSession(t *testing.T) {
	f := startServer(t)
	o := f.connect(t)
	o.next()
	o.track(f.zombie.Mob().ObjectID())
	o.next()
	o.next()

	o.conn.Close()

	require.Eventually(t, func() bool {
		return f.srv.registry.SessionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, f.srv.registry.Trackers(f.zombie.Mob().ObjectID()))
}
