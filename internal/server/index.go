package server

// indexPage is the single-page live view. Deliberately plain: the SVG markup
// itself comes fully rendered from the server, the page only swaps it in and
// relays slider input.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>flowlab</title>
<style>
body { background: #0a0e13; color: #cdd6e0; font-family: monospace; margin: 20px; }
.panels { display: flex; flex-wrap: wrap; gap: 16px; }
.panel { border: 1px solid #2a333f; border-radius: 6px; padding: 12px; }
.panel h2 { margin: 0 0 8px 0; font-size: 14px; text-transform: uppercase; color: #6fd0a8; }
.rate { color: #9ad1ff; margin: 6px 0; }
label { display: block; margin-top: 6px; font-size: 12px; }
button { margin-right: 6px; margin-top: 8px; background: #1a222c; color: #cdd6e0; border: 1px solid #2a333f; border-radius: 4px; padding: 4px 10px; cursor: pointer; }
</style>
</head>
<body>
<h1>flowlab</h1>
<div class="panels" id="panels"></div>
<script>
const circuits = {
  electric:   { params: { voltage: [0, 100], wireWidth: [10, 100] } },
  water:      { params: { heightDifference: [10, 100], pipeWidth: [10, 100] } },
  playground: { params: { slideHeight: [10, 100], slideWidth: [10, 100] } }
};

const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
const send = (msg) => { if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg)); };

const root = document.getElementById("panels");
for (const [name, def] of Object.entries(circuits)) {
  const panel = document.createElement("div");
  panel.className = "panel";
  let sliders = "";
  for (const [p, [min, max]] of Object.entries(def.params)) {
    sliders += '<label>' + p + ' <input type="range" min="' + min + '" max="' + max +
      '" value="50" data-circuit="' + name + '" data-param="' + p + '"></label>';
  }
  panel.innerHTML = '<h2>' + name + '</h2>' +
    '<div class="view" id="view-' + name + '"></div>' +
    '<div class="rate" id="rate-' + name + '"></div>' + sliders +
    '<button data-act="play" data-circuit="' + name + '">play</button>' +
    '<button data-act="pause" data-circuit="' + name + '">pause</button>' +
    '<button data-act="reset" data-circuit="' + name + '">reset</button>' +
    '<label><input type="checkbox" checked data-measure="' + name + '"> measure rate</label>';
  root.appendChild(panel);
}

root.addEventListener("input", (ev) => {
  const t = ev.target;
  if (t.dataset.param) {
    send({ circuit: t.dataset.circuit, action: "set", param: t.dataset.param, value: Number(t.value) });
  } else if (t.dataset.measure) {
    send({ circuit: t.dataset.measure, action: "measure", on: t.checked });
  }
});
root.addEventListener("click", (ev) => {
  const t = ev.target;
  if (t.dataset.act) send({ circuit: t.dataset.circuit, action: t.dataset.act });
});

ws.onmessage = (ev) => {
  const frame = JSON.parse(ev.data);
  const view = document.getElementById("view-" + frame.circuit);
  const rate = document.getElementById("rate-" + frame.circuit);
  if (view) view.innerHTML = frame.svg;
  if (rate) rate.textContent = frame.rate;
};
</script>
</body>
</html>
`
